// Package resub implements resubstitution: for each AND node, search an
// increasingly complex set of candidate replacements built from the
// node's existing divisors (sibling logic already in the graph) and
// commit the first one that is functionally exact on the cut's full input
// space.
package resub

import "github.com/aigforge/aigforge/pkg/aig"

// Div1Max and Div2Max cap the primary and fully-expanded divisor set
// sizes. The ratio (500/150 ≈ 3.33) is preserved because the two-divisor
// combination loop used by the one-gate and two-gate search steps is
// quadratic in the divisor count.
const (
	Div1Max = 150
	Div2Max = 500
)

// coneInterior returns every AND node strictly between root and leaves
// (root itself and the leaves excluded), in the order an iterative
// pre-order depth-first walk discovers them.
func coneInterior(s *aig.Store, root aig.ID, leaves []aig.ID) []aig.ID {
	leafSet := make(map[aig.ID]bool, len(leaves))
	for _, l := range leaves {
		leafSet[l] = true
	}

	s.IncrementStamp()
	for _, l := range leaves {
		s.MarkCurrent(l)
	}
	s.MarkCurrent(root)

	var order []aig.ID
	stack := []aig.ID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id != root && !leafSet[id] {
			order = append(order, id)
		}
		if leafSet[id] {
			continue
		}
		n := s.Node(id)
		if !n.IsAnd() {
			continue
		}
		for _, v := range [2]aig.ID{n.Fanin0().Var(), n.Fanin1().Var()} {
			if !s.IsCurrent(v) {
				s.MarkCurrent(v)
				stack = append(stack, v)
			}
		}
	}
	return order
}

// collectDivisors builds the divisor set for root's resubstitution search:
// the cut leaves, the cone interior excluding root's MFFC, then a bounded
// expansion step that pulls in fanouts of already-collected divisors whose
// both fanins are themselves already divisors (so they're expressible
// purely in terms of surviving logic).
func collectDivisors(s *aig.Store, root aig.ID, leaves []aig.ID, mffcNodes map[aig.ID]bool) []aig.ID {
	inSet := make(map[aig.ID]bool, Div1Max)
	var divisors []aig.ID

	add := func(id aig.ID) {
		if !inSet[id] {
			inSet[id] = true
			divisors = append(divisors, id)
		}
	}
	for _, l := range leaves {
		add(l)
	}
	for _, id := range coneInterior(s, root, leaves) {
		if !mffcNodes[id] && len(divisors) < Div1Max {
			add(id)
		}
	}

	fi := s.BuildFanoutIndex()
	defer s.TeardownFanoutIndex()

	frontier := append([]aig.ID(nil), divisors...)
	for len(frontier) > 0 && len(divisors) < Div2Max {
		var next []aig.ID
		for _, d := range frontier {
			for _, fo := range fi.Of(d) {
				if inSet[fo] || mffcNodes[fo] || fo == root {
					continue
				}
				n := s.Node(fo)
				if !n.IsAnd() {
					continue
				}
				a, b := n.Fanin0().Var(), n.Fanin1().Var()
				if inSet[a] && inSet[b] {
					add(fo)
					next = append(next, fo)
					if len(divisors) >= Div2Max {
						break
					}
				}
			}
			if len(divisors) >= Div2Max {
				break
			}
		}
		frontier = next
	}

	return divisors
}
