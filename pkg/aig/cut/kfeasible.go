package cut

import (
	"sort"

	"github.com/aigforge/aigforge/pkg/aig"
)

// MaxK is the largest cut size the enumerator supports; truth tables above
// this width stop being useful for NPN-class lookup and the enumeration
// itself becomes too expensive to keep exhaustive.
const MaxK = 6

// Cut is one K-feasible cut of a node: an unordered leaf set together with
// the node's truth table expressed over those leaves in a fixed order.
type Cut struct {
	Leaves []aig.ID
	Table  Truth
}

// trivial returns the single-leaf cut {id} with the identity truth table.
func trivial(id aig.ID) Cut {
	return Cut{Leaves: []aig.ID{id}, Table: ElemVar(1, 0)}
}

func leafKey(leaves []aig.ID) uint64 {
	// Leaves are always sorted before a key is taken, so distinct orderings
	// of the same set collide as intended.
	var h uint64 = 1469598103934665603
	for _, l := range leaves {
		h ^= uint64(l)
		h *= 1099511628211
	}
	return h
}

func sortedLeaves(leaves []aig.ID) []aig.ID {
	out := append([]aig.ID(nil), leaves...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// dominates reports whether sub's leaf set is a subset of super's (both
// must already be sorted), meaning super is redundant: any cut using super
// could instead use sub with no loss of coverage.
func dominates(sub, super []aig.ID) bool {
	if len(sub) > len(super) {
		return false
	}
	i := 0
	for _, s := range super {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}

// merge combines two parent cuts into a candidate cut for their AND, or
// reports ok=false if the union would exceed k leaves.
func merge(a, b Cut, k int) (leaves []aig.ID, ok bool) {
	set := make(map[aig.ID]bool, len(a.Leaves)+len(b.Leaves))
	for _, l := range a.Leaves {
		set[l] = true
	}
	for _, l := range b.Leaves {
		set[l] = true
	}
	if len(set) > k {
		return nil, false
	}
	out := make([]aig.ID, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	return sortedLeaves(out), true
}

// EnumerateAll computes, for every AND node reachable in a DFS of the
// store, the full K-feasible cut set (K<=MaxK), keyed by node id. The
// single-node trivial cut is always included. nKeepMax bounds how many
// non-dominated cuts are retained per node, keeping the smallest (by leaf
// count, then by lowest leaf ids) when more are found.
func EnumerateAll(s *aig.Store, k, nKeepMax int) map[aig.ID][]Cut {
	if k > MaxK {
		k = MaxK
	}
	cuts := make(map[aig.ID][]Cut)

	order := s.DFS(false)
	for _, id := range order {
		n := s.Node(id)
		if !n.IsAnd() {
			continue
		}
		a, b := n.Fanin0().Var(), n.Fanin1().Var()
		cutsA := cutsOf(cuts, a)
		cutsB := cutsOf(cuts, b)

		seen := make(map[uint64]bool)
		var candidates []Cut
		candidates = append(candidates, trivial(id))
		seen[leafKey([]aig.ID{id})] = true

		for _, ca := range cutsA {
			for _, cb := range cutsB {
				leaves, ok := merge(ca, cb, k)
				if !ok {
					continue
				}
				key := leafKey(leaves)
				if seen[key] {
					continue
				}
				seen[key] = true
				table := Simulate(s, id, leaves)
				candidates = append(candidates, Cut{Leaves: leaves, Table: table})
			}
		}

		cuts[id] = filterDominated(candidates, nKeepMax)
	}
	return cuts
}

func cutsOf(cuts map[aig.ID][]Cut, id aig.ID) []Cut {
	if c, ok := cuts[id]; ok {
		return c
	}
	return []Cut{trivial(id)}
}

// filterDominated drops any cut whose leaf set is a strict superset of
// another surviving cut's, then keeps at most nKeepMax of what remains,
// smallest leaf count first and lowest leaf ids breaking ties.
func filterDominated(candidates []Cut, nKeepMax int) []Cut {
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].Leaves) != len(candidates[j].Leaves) {
			return len(candidates[i].Leaves) < len(candidates[j].Leaves)
		}
		for x := range candidates[i].Leaves {
			if x >= len(candidates[j].Leaves) {
				return false
			}
			if candidates[i].Leaves[x] != candidates[j].Leaves[x] {
				return candidates[i].Leaves[x] < candidates[j].Leaves[x]
			}
		}
		return false
	})

	var kept []Cut
	for _, c := range candidates {
		dominated := false
		for _, k := range kept {
			if dominates(k.Leaves, c.Leaves) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, c)
		}
		if len(kept) >= nKeepMax {
			break
		}
	}
	return kept
}
