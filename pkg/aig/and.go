package aig

// AndLit implements the canonical AND constructor: total, hash-consed, and
// enforcing the graph's structural invariants (distinct fanins, no
// constant-1 fanin, canonical fanin order, hash uniqueness). It may return
// an existing literal rather than allocating (structural hashing).
func (s *Store) AndLit(a, b Lit) Lit {
	// 1. a == b -> a
	if a == b {
		return a
	}
	// 2. a == NOT(b) -> const 0
	if a == b.Not() {
		return LitConst0
	}
	// 3. regular(a) is const-1
	if a.Var() == ConstID {
		if a == LitConst1 {
			return b
		}
		return LitConst0
	}
	// 4. symmetric for b
	if b.Var() == ConstID {
		if b == LitConst1 {
			return a
		}
		return LitConst0
	}

	// 5. canonical fanin order
	if a.Var() > b.Var() {
		a, b = b, a
	}
	key := faninPair{a, b}

	// 6. hash lookup
	if id, ok := s.hash[key]; ok {
		return NewLit(id, false)
	}

	// 7. allocate
	id := s.alloc(KindAnd)
	n := &s.nodes[id]
	n.fanin0, n.fanin1 = a, b
	n.level = 1 + max32(s.nodes[a.Var()].level, s.nodes[b.Var()].level)
	n.phase = (s.nodes[a.Var()].phase != a.IsCompl()) && (s.nodes[b.Var()].phase != b.IsCompl())

	s.hash[key] = id
	s.addFanoutRef(a.Var(), fanoutRef{Owner: id, Slot: 0})
	s.addFanoutRef(b.Var(), fanoutRef{Owner: id, Slot: 1})
	s.nodes[a.Var()].refs++
	s.nodes[b.Var()].refs++

	return NewLit(id, false)
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// AndRaw places an AND node at a caller-chosen, already-allocated id with
// the given fanins, without hash-consing or constant/idempotence
// simplification. It is used exclusively by the AIGER reader's default
// (non -c) path to keep every AND record of the file, in file order; canonical
// fanin order is still enforced since that is a storage convention, not a
// semantic reduction. Redundancy left behind by a raw read is eliminated
// later by restrash (pkg/aig/pass.RestrashZero).
func (s *Store) AndRaw(id ID, a, b Lit) {
	if a.Var() > b.Var() {
		a, b = b, a
	}
	n := &s.nodes[id]
	n.kind = KindAnd
	n.fanin0, n.fanin1 = a, b
	n.level = 1 + max32(s.levelOf(a.Var()), s.levelOf(b.Var()))
	n.phase = (s.phaseOf(a.Var()) != a.IsCompl()) && (s.phaseOf(b.Var()) != b.IsCompl())

	s.addFanoutRef(a.Var(), fanoutRef{Owner: id, Slot: 0})
	s.addFanoutRef(b.Var(), fanoutRef{Owner: id, Slot: 1})
	s.nodes[a.Var()].refs++
	s.nodes[b.Var()].refs++

	key := faninPair{a, b}
	if _, ok := s.hash[key]; !ok {
		s.hash[key] = id
	}
}

func (s *Store) levelOf(id ID) uint32 { return s.nodes[id].level }
func (s *Store) phaseOf(id ID) bool   { return s.nodes[id].phase }

// ReservePlaceholder allocates a KindVoid id without touching any hash or
// fanout bookkeeping, for use by the AIGER reader, which must materialize
// ids for forward-referenced AND vars before their fanins are known.
func (s *Store) ReservePlaceholder() ID {
	return s.alloc(KindVoid)
}
