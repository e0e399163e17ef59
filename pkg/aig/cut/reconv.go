package cut

import "github.com/aigforge/aigforge/pkg/aig"

// Reconvergent grows a reconvergence-driven cut outward from root: a small,
// typically reconvergent leaf set such that the cone above the leaves is
// size-bounded. faninLimit bounds how many live fanouts a frontier node may
// have before it is too expensive to absorb; leafMax bounds the frontier
// size.
func Reconvergent(s *aig.Store, root aig.ID, leafMax, faninLimit int) []aig.ID {
	n := s.Node(root)
	if !n.IsAnd() {
		return []aig.ID{root}
	}

	var visited, frontier []aig.ID
	marked := func(id aig.ID) bool { return s.Node(id).UserInt() == 1 }
	markB := func(id aig.ID) { s.Node(id).SetUserInt(1) }
	unmarkAll := func() {
		for _, id := range visited {
			s.Node(id).ClearUserSlot()
		}
	}
	defer unmarkAll()

	markB(root)
	visited = append(visited, root)
	for _, fv := range [2]aig.ID{n.Fanin0().Var(), n.Fanin1().Var()} {
		if !marked(fv) {
			markB(fv)
			visited = append(visited, fv)
			frontier = append(frontier, fv)
		}
	}

	cost := func(id aig.ID) int {
		fn := s.Node(id)
		if fn.IsCI() || !fn.IsAnd() {
			return 1 << 30
		}
		if s.FanoutCount(id) > faninLimit {
			return 1 << 30
		}
		c := 0
		if !marked(fn.Fanin0().Var()) {
			c++
		}
		if !marked(fn.Fanin1().Var()) {
			c++
		}
		return c
	}

	for len(frontier) > 1 {
		bestIdx, bestCost, bestLevel := -1, 1<<31, -1
		for i, id := range frontier {
			c := cost(id)
			lvl := int(s.Node(id).Level())
			if c < bestCost || (c == bestCost && lvl > bestLevel) {
				bestIdx, bestCost, bestLevel = i, c, lvl
			}
		}
		if bestCost >= 3 && len(frontier) >= leafMax {
			break
		}
		if bestCost >= 1<<30 {
			break
		}
		if len(frontier)-1+2 > leafMax && bestCost > 0 {
			// Expanding would blow the leaf budget with no gain-free
			// replacement available; stop growing.
			break
		}

		picked := frontier[bestIdx]
		frontier = append(frontier[:bestIdx], frontier[bestIdx+1:]...)
		pn := s.Node(picked)
		for _, fv := range [2]aig.ID{pn.Fanin0().Var(), pn.Fanin1().Var()} {
			if !marked(fv) {
				markB(fv)
				visited = append(visited, fv)
				frontier = append(frontier, fv)
			}
		}
	}

	result := make([]aig.ID, len(frontier))
	copy(result, frontier)
	return result
}
