// Package pass implements the pass driver (§4.12): the cleanup/renumber/
// rebuild/integrity-check sequence every mutating transform finishes with,
// plus the two driver-level passes that are themselves only a rebuild:
// restrash and latch zero-initialisation.
package pass

import "github.com/aigforge/aigforge/pkg/aig"

// Renumber returns a fresh store isomorphic to s, with ids assigned in the
// order the pass driver requires: constant first, then PIs, then POs, then
// latches with their paired I/O, then ANDs in DFS (topological) order. It
// is the (b)+(c)+(d) step of the pass driver: replaying every AND through
// AndLit rebuilds the hash table over the new ordering and recomputes
// levels as a side effect of construction, rather than as separate passes.
//
// Renumber assumes s is already cleaned up (Cleanup called, no dangling
// ANDs): Finish does that first.
func Renumber(s *aig.Store) *aig.Store {
	return rebuild(s, func(aig.Latch) bool { return false })
}

// rebuild replays s into a new store in DFS id order, translating every
// literal through translate as it goes. flip reports, for each latch,
// whether its present-state CI should be read back through a complement
// everywhere it's consumed (the substitution Zero needs); Renumber and
// RestrashZero always answer false.
func rebuild(s *aig.Store, flip func(aig.Latch) bool) *aig.Store {
	order := s.DFS(false)
	ns := aig.New(len(order) + len(s.PIs()) + 2*len(s.Latches()) + len(s.POs()))

	translate := make(map[aig.ID]aig.Lit, len(order)+len(s.PIs())+len(s.Latches())+1)
	translate[aig.ConstID] = aig.LitConst1

	for _, pi := range s.PIs() {
		newLit := ns.CreatePI()
		translate[pi] = newLit
		if name := s.Node(pi).Name(); name != "" {
			ns.SetName(newLit.Var(), name)
		}
	}

	poIDs := make([]aig.ID, len(s.POs()))
	for i, po := range s.POs() {
		poIDs[i] = ns.CreatePO(aig.LitConst0)
		if name := s.Node(po).Name(); name != "" {
			ns.SetName(poIDs[i], name)
		}
	}

	type latchMeta struct {
		idx     int
		flipped bool
	}
	metas := make([]latchMeta, len(s.Latches()))
	for i, l := range s.Latches() {
		newOut, idx := ns.CreateLatch()
		f := flip(l)
		if f {
			translate[l.Out] = newOut.Not()
		} else {
			translate[l.Out] = newOut
		}
		metas[i] = latchMeta{idx: idx, flipped: f}
		if name := s.Node(l.Out).Name(); name != "" {
			ns.SetName(newOut.Var(), name)
		}
	}

	translateLit := func(l aig.Lit) aig.Lit {
		return translate[l.Var()].NotCond(l.IsCompl())
	}

	for _, id := range order {
		n := s.Node(id)
		a := translateLit(n.Fanin0())
		b := translateLit(n.Fanin1())
		translate[id] = ns.AndLit(a, b)
	}

	for i, po := range s.POs() {
		driver := translateLit(s.Node(po).Fanin0())
		ns.SetDriver(poIDs[i], driver)
	}

	for i, l := range s.Latches() {
		m := metas[i]
		driver := translateLit(s.Node(l.In).Fanin0())
		reset := l.Reset
		if m.flipped {
			driver = driver.Not()
			reset = aig.ResetZero
		}
		ns.SetLatchNext(m.idx, driver)
		ns.SetLatchReset(m.idx, reset)
	}

	return ns
}
