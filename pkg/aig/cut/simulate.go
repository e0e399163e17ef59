package cut

import "github.com/aigforge/aigforge/pkg/aig"

// Simulate computes the truth table of root expressed over the ordered
// leaf set leaves (len(leaves) <= 16), by evaluating every AND node between
// root and the leaves with packed-word simulation: each node's table is the
// bitwise AND of its two fanins' tables, each first complemented if its
// edge carries the inversion bit.
//
// This recomputes the table for the cut's internal nodes directly against
// the requested leaf order every time, rather than merging already-computed
// per-node tables bottom-up with a leaf-reindexing/cofactor-shuffle step.
// The result is identical; only the
// incremental reuse across overlapping cuts is not preserved.
func Simulate(s *aig.Store, root aig.ID, leaves []aig.ID) Truth {
	k := len(leaves)
	if k == 0 {
		// A constant cut: root must itself be the constant node.
		t := NewTruth(1)
		if s.Node(root).Phase() {
			for i := range t.Words {
				t.Words[i] = 0xFFFFFFFF
			}
		}
		return t
	}

	memo := make(map[aig.ID]Truth, 2*k)
	for i, leaf := range leaves {
		memo[leaf] = ElemVar(k, i)
	}

	var eval func(id aig.ID) Truth
	eval = func(id aig.ID) Truth {
		if t, ok := memo[id]; ok {
			return t
		}
		n := s.Node(id)
		t0 := litTruth(eval, n.Fanin0(), k)
		t1 := litTruth(eval, n.Fanin1(), k)
		t := And(t0, t1)
		memo[id] = t
		return t
	}

	return eval(root)
}

func litTruth(eval func(aig.ID) Truth, l aig.Lit, k int) Truth {
	if l.IsConst() {
		t := NewTruth(k)
		if l == aig.LitConst1 {
			for i := range t.Words {
				t.Words[i] = 0xFFFFFFFF
			}
		}
		return t
	}
	t := eval(l.Var())
	if l.IsCompl() {
		return t.Not()
	}
	return t
}
