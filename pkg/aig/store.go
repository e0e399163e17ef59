package aig

// Store is the strashed AIG: the arena of nodes, the structural-hash table,
// the always-maintained fanout adjacency that Replace/Cleanup need to stay
// correct, and the PI/PO/latch boundary lists.
//
// A hand-rolled open-chaining hash table sized to the next prime above a
// size hint would just be pointer/tag punning with extra steps, so the
// structural hash here is a plain Go map keyed on the canonical fanin pair.
// The on-demand fanout view (FanoutIndex, see fanout.go) is kept as a
// separate, explicitly-built/torn-down snapshot over the same ground truth
// this file maintains incrementally; the incremental bookkeeping itself is
// not optional, since Replace and Cleanup cannot be correct without it.
type Store struct {
	nodes []Node
	free  []ID

	hash map[faninPair]ID

	fanoutOf map[ID][]fanoutRef

	pis     []ID
	pos     []ID
	latches []Latch

	stamp uint64

	fanoutBuilt bool
}

// faninPair is the structural-hash key: the canonical (ordered) fanin
// literals of an AND node.
type faninPair struct {
	a, b Lit
}

// fanoutRef names one incoming edge: the owning node and which fanin slot
// (0 or 1) holds the edge.
type fanoutRef struct {
	Owner ID
	Slot  int8
}

// Latch pairs a combinational output (In, the next-state driver) with a
// combinational input (Out, the present-state value): a latch is
// conceptually a box whose input and output are linked by one record.
type Latch struct {
	In    ID // KindPO node: its Fanin0 is the next-state driver literal
	Out   ID // KindLatch node: a CI, like a PI
	Reset uint8
}

// Reset values for a Latch: zero, one, or don't-care (self-loop/unknown).
const (
	ResetZero     uint8 = 0
	ResetOne      uint8 = 1
	ResetDontCare uint8 = 2
)

// New returns a Store with only the constant-1 node present, sized for
// roughly sizeHint additional nodes.
func New(sizeHint int) *Store {
	if sizeHint < 0 {
		sizeHint = 0
	}
	s := &Store{
		nodes:    make([]Node, 0, sizeHint+1),
		hash:     make(map[faninPair]ID, sizeHint),
		fanoutOf: make(map[ID][]fanoutRef, sizeHint),
	}
	s.nodes = append(s.nodes, Node{kind: KindConst1, id: ConstID, phase: true})
	return s
}

// NumNodes returns the number of live (non-void) nodes, including the
// constant.
func (s *Store) NumNodes() int {
	n := 0
	for i := range s.nodes {
		if s.nodes[i].kind != KindVoid {
			n++
		}
	}
	return n
}

// NumAnds returns the number of live AND nodes.
func (s *Store) NumAnds() int {
	n := 0
	for i := range s.nodes {
		if s.nodes[i].kind == KindAnd {
			n++
		}
	}
	return n
}

// MaxID returns the highest arena index ever allocated (inclusive), used by
// passes that must bound their iteration to the ids that existed before the
// pass started.
func (s *Store) MaxID() ID { return ID(len(s.nodes) - 1) }

// Node returns a pointer to the node at id. The pointer is valid until the
// next structural mutation of the store.
func (s *Store) Node(id ID) *Node { return &s.nodes[id] }

// PIs returns the ordered list of primary-input node IDs.
func (s *Store) PIs() []ID { return s.pis }

// POs returns the ordered list of primary-output node IDs.
func (s *Store) POs() []ID { return s.pos }

// Latches returns the ordered list of latch pairs.
func (s *Store) Latches() []Latch { return s.latches }

// Const1 returns the literal for the constant-1 node.
func (s *Store) Const1() Lit { return LitConst1 }

func (s *Store) alloc(kind Kind) ID {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.nodes[id] = Node{kind: kind, id: id}
		return id
	}
	id := ID(len(s.nodes))
	s.nodes = append(s.nodes, Node{kind: kind, id: id})
	return id
}

// CreatePI allocates a new primary input and returns its (always positive)
// literal.
func (s *Store) CreatePI() Lit {
	id := s.alloc(KindPI)
	s.pis = append(s.pis, id)
	return NewLit(id, false)
}

// CreatePO allocates a new primary output driven by driver and returns its
// node ID. POs are addressed by ID, not literal: nothing may take a PO as a
// fanin.
func (s *Store) CreatePO(driver Lit) ID {
	id := s.alloc(KindPO)
	s.setFanin0(id, driver, true)
	s.pos = append(s.pos, id)
	return id
}

// CreateLatch allocates a new latch (a paired CI/CO) with an initially
// don't-care reset and a constant-0 next-state driver, and returns the
// latch's present-state literal and its record index.
func (s *Store) CreateLatch() (out Lit, idx int) {
	outID := s.alloc(KindLatch)
	inID := s.alloc(KindPO)
	s.setFanin0(inID, LitConst0, true)
	idx = len(s.latches)
	s.latches = append(s.latches, Latch{In: inID, Out: outID, Reset: ResetDontCare})
	return NewLit(outID, false), idx
}

// SetLatchNext updates the next-state driver of the idx'th latch. Used by
// the AIGER reader once the full AND section has been parsed, since a
// latch's next-state literal may forward-reference an AND node that does
// not exist yet at the point the latch section is read.
func (s *Store) SetLatchNext(idx int, driver Lit) {
	l := s.latches[idx]
	s.unsetFanin0(l.In)
	s.setFanin0(l.In, driver, true)
}

// SetLatchReset sets the idx'th latch's reset classification.
func (s *Store) SetLatchReset(idx int, reset uint8) {
	s.latches[idx].Reset = reset
}

// SetDriver repoints a single PO (or latch-input) node's own sole fanin to
// newLit, without touching any other fanout edge the old driver may have
// had. This is the single-edge counterpart to Replace, which retargets
// every fanout edge of a variable; SetDriver is for callers (the balancer,
// pass.rebuild, the AIGER reader) that only want to swap the root literal
// one output drives.
func (s *Store) SetDriver(poID ID, newLit Lit) {
	old := s.nodes[poID].fanin0
	if old == newLit {
		return
	}
	s.unsetFanin0(poID)
	s.setFanin0(poID, newLit, true)
	if old.Var() != ConstID {
		s.maybeDeleteDangling(old.Var())
	}
}

// ProbeAnd reports whether AND(a, b) would need no new node, without
// creating one: either it folds trivially (equal, complementary or constant
// fanins) or the structural hash table already holds it. Used by passes (the balancer's
// permute-for-sharing step) that want to bias toward reuse before calling
// AndLit.
func (s *Store) ProbeAnd(a, b Lit) bool {
	if a == b || a == b.Not() || a.Var() == ConstID || b.Var() == ConstID {
		return true
	}
	if a.Var() > b.Var() {
		a, b = b, a
	}
	_, ok := s.hash[faninPair{a, b}]
	return ok
}

func (s *Store) setFanin0(id ID, lit Lit, bump bool) {
	n := &s.nodes[id]
	n.fanin0 = lit
	s.addFanoutRef(lit.Var(), fanoutRef{Owner: id, Slot: 0})
	if bump {
		s.nodes[lit.Var()].refs++
	}
}

func (s *Store) unsetFanin0(id ID) {
	n := &s.nodes[id]
	old := n.fanin0
	s.removeFanoutRef(old.Var(), fanoutRef{Owner: id, Slot: 0})
	s.nodes[old.Var()].refs--
}

func (s *Store) addFanoutRef(target ID, ref fanoutRef) {
	s.fanoutOf[target] = append(s.fanoutOf[target], ref)
}

func (s *Store) removeFanoutRef(target ID, ref fanoutRef) {
	list := s.fanoutOf[target]
	for i, r := range list {
		if r == ref {
			list[i] = list[len(list)-1]
			s.fanoutOf[target] = list[:len(list)-1]
			return
		}
	}
}

// FanoutCount returns the number of live fanout edges of id (equivalently
// its refcount, which must always agree with the edge count).
func (s *Store) FanoutCount(id ID) int { return len(s.fanoutOf[id]) }

func faninOf(n *Node, slot int8) Lit {
	if slot == 0 {
		return n.fanin0
	}
	return n.fanin1
}

func setFaninOf(n *Node, slot int8, l Lit) {
	if slot == 0 {
		n.fanin0 = l
	} else {
		n.fanin1 = l
	}
}
