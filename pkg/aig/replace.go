package aig

// Replace retargets every fanout edge of oldVar to newLit, XOR-ing each
// edge's stored complement bit with newLit's, then deletes oldVar. If a
// fanout is an AND node, replacing one of its fanins may make it
// non-normalised or collide with an existing AND; in either case its slot
// is re-strashed by re-deriving it through AndLit and recursively
// replacing it too.
//
// oldVar must not be the constant or a PI: those are never deleted.
func (s *Store) Replace(oldVar ID, newLit Lit) {
	if oldVar == newLit.Var() {
		return
	}
	s.replaceFanout(oldVar, newLit)
	if oldVar != ConstID && s.nodes[oldVar].kind == KindAnd {
		s.deleteAnd(oldVar)
	}
}

// replaceFanout retargets every edge currently pointing at oldVar to
// newLit, but does not itself delete oldVar or touch oldVar's own fanins:
// callers that have already detached oldVar's fanins (see Replace's
// recursive re-strash case) must free the node themselves afterward.
func (s *Store) replaceFanout(oldVar ID, newLit Lit) {
	refs := append([]fanoutRef(nil), s.fanoutOf[oldVar]...)
	for _, ref := range refs {
		owner := &s.nodes[ref.Owner]
		if owner.kind == KindVoid {
			continue
		}
		oldEdgeLit := faninOf(owner, ref.Slot)
		newEdgeLit := newLit.NotCond(oldEdgeLit.IsCompl())

		switch owner.kind {
		case KindAnd:
			otherSlot := int8(1 - ref.Slot)
			otherLit := faninOf(owner, otherSlot)
			// Detach owner's current fanins (one of which is the edge to
			// oldVar we're retargeting) from the hash table and fanout
			// graph; it is about to be rebuilt elsewhere (possibly
			// collapsing into an already-existing node) and freed.
			s.detachAnd(ref.Owner)
			rebuilt := s.AndLit(newEdgeLit, otherLit)
			s.replaceFanout(ref.Owner, rebuilt)
			s.freeNode(ref.Owner)
		case KindPO:
			s.removeFanoutRef(oldVar, ref)
			s.nodes[oldVar].refs--
			setFaninOf(owner, ref.Slot, newEdgeLit)
			s.addFanoutRef(newEdgeLit.Var(), ref)
			s.nodes[newEdgeLit.Var()].refs++
		}
	}
}

// detachAnd removes an AND node's two fanin edges from the hash table and
// fanout graph without touching its fanins' refcounts' dependents, in
// preparation for either rebuilding it in place or discarding it. Refcounts
// on its fanins ARE decremented, since the edges are being removed.
func (s *Store) detachAnd(id ID) {
	n := &s.nodes[id]
	key := faninPair{n.fanin0, n.fanin1}
	if existing, ok := s.hash[key]; ok && existing == id {
		delete(s.hash, key)
	}
	s.removeFanoutRef(n.fanin0.Var(), fanoutRef{Owner: id, Slot: 0})
	s.removeFanoutRef(n.fanin1.Var(), fanoutRef{Owner: id, Slot: 1})
	s.nodes[n.fanin0.Var()].refs--
	s.nodes[n.fanin1.Var()].refs--
}

// deleteAnd recursively deletes an AND node and any of its fanins that
// become dangling as a result.
func (s *Store) deleteAnd(id ID) {
	n := &s.nodes[id]
	if n.kind != KindAnd {
		return
	}
	fanin0, fanin1 := n.fanin0, n.fanin1
	s.detachAnd(id)
	s.freeNode(id)
	s.maybeDeleteDangling(fanin0.Var())
	s.maybeDeleteDangling(fanin1.Var())
}

func (s *Store) maybeDeleteDangling(id ID) {
	n := &s.nodes[id]
	if n.kind == KindAnd && n.refs == 0 {
		s.deleteAnd(id)
	}
}

func (s *Store) freeNode(id ID) {
	s.nodes[id] = Node{kind: KindVoid, id: id}
	s.free = append(s.free, id)
}

// Cleanup collects every AND node with a zero refcount and recursively
// deletes it, returning the number of nodes removed.
func (s *Store) Cleanup() int {
	removed := 0
	for id := ID(1); id < ID(len(s.nodes)); id++ {
		n := &s.nodes[id]
		if n.kind == KindAnd && n.refs == 0 {
			before := s.NumAnds()
			s.deleteAnd(id)
			removed += before - s.NumAnds()
		}
	}
	return removed
}
