// Package mffc computes the maximum fanout-free cone of a node inside a
// cut, by transiently perturbing the store's reference counts. This is the
// one place in the engine that deliberately desyncs Node.Refs() from the
// live fanout-edge count; the discipline (every deref has a matching ref
// before any external observation) is enforced by Label always restoring
// counts before it returns.
package mffc

import "github.com/aigforge/aigforge/pkg/aig"

// Result is the outcome of labelling the MFFC of a root inside a cut.
type Result struct {
	// Size is the number of AND nodes strictly owned by root (including
	// root itself) within the cut.
	Size int
	// Nodes is Size's witnesses, in the order they were dereferenced
	// (root first), when the caller asked for them.
	Nodes []aig.ID
}

// Label computes the MFFC of root bounded by the leaf set leaves, using a
// deref/ref discipline: leaves are ref-bumped up front, root's fanin cone
// is dereferenced to find everything exclusively owned by root, then the
// same cone is re-referenced to restore every count. If collectNodes is
// true, Nodes is populated with every internal node that was dereffed.
func Label(s *aig.Store, root aig.ID, leaves []aig.ID, collectNodes bool) Result {
	for _, leaf := range leaves {
		bumpRef(s, leaf, +1)
	}

	var nodes []aig.ID
	derefCount := derefWalk(s, root, func(id aig.ID) {
		if collectNodes {
			nodes = append(nodes, id)
		}
	})
	refCount := refWalk(s, root)

	for _, leaf := range leaves {
		bumpRef(s, leaf, -1)
	}

	if derefCount != refCount {
		// A bug in deref/ref symmetry would otherwise silently corrupt
		// refcounts; fail loudly instead since this can never legally
		// happen for a well-formed AIG.
		panic("mffc: deref/ref count mismatch")
	}

	return Result{Size: derefCount, Nodes: nodes}
}

func bumpRef(s *aig.Store, id aig.ID, delta int32) {
	s.AddRefDelta(id, delta)
}

// derefWalk recursively decrements the refcount of each fanin of root,
// recursing into any fanin whose count reaches zero and is itself an AND,
// and returns the total number of such recursions (the MFFC size).
func derefWalk(s *aig.Store, root aig.ID, visit func(aig.ID)) int {
	n := s.Node(root)
	if !n.IsAnd() {
		return 0
	}
	count := 1
	visit(root)
	for _, fv := range [2]aig.ID{n.Fanin0().Var(), n.Fanin1().Var()} {
		if after := s.AddRefDelta(fv, -1); after == 0 && s.Node(fv).IsAnd() {
			count += derefWalk(s, fv, visit)
		}
	}
	return count
}

// refWalk is the symmetric re-reference pass; it must retrace exactly the
// same nodes derefWalk did.
func refWalk(s *aig.Store, root aig.ID) int {
	n := s.Node(root)
	if !n.IsAnd() {
		return 0
	}
	count := 1
	for _, fv := range [2]aig.ID{n.Fanin0().Var(), n.Fanin1().Var()} {
		if after := s.AddRefDelta(fv, +1); after == 1 && s.Node(fv).IsAnd() {
			count += refWalk(s, fv)
		}
	}
	return count
}
