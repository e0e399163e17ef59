// Package balance implements the level-balancing pass: it rebuilds each
// maximal AND-supergate as a Huffman-like balanced tree to minimise depth,
// opportunistically sharing with nodes that already exist in the store.
package balance

import (
	"sort"

	"github.com/aigforge/aigforge/pkg/aig"
)

// Options tunes supergate collection.
type Options struct {
	// Selective, when true, allows a shared (fanout>1) AND node to be
	// absorbed into a supergate and duplicated, but only when it lies on
	// the critical path of the AND that reads it: its level must be exactly
	// one below that AND's level. When false, any node with more than one
	// fanout is always treated as a frontier leaf.
	Selective bool
}

// operand is one leaf of a supergate under construction: a literal together
// with its node's level, used to drive the lowest-level-first merge order.
type operand struct {
	lit   aig.Lit
	level uint32
}

// Run balances every combinational output's driver in DFS post-order,
// replacing each one with the literal of its rebuilt, depth-minimised
// supergate.
func Run(s *aig.Store, opts Options) {
	for _, po := range s.POs() {
		driver := s.Node(po).Fanin0()
		rebuilt := balanceLit(s, driver, opts)
		if rebuilt != driver {
			s.SetDriver(po, rebuilt)
		}
	}
	for _, l := range s.Latches() {
		driver := s.Node(l.In).Fanin0()
		rebuilt := balanceLit(s, driver, opts)
		if rebuilt != driver {
			s.SetDriver(l.In, rebuilt)
		}
	}
}

// balanceLit recursively balances every AND beneath lit (bottom-up, so
// fanins are already balanced before their supergate roots are collected)
// and returns the literal of the rebuilt cone.
func balanceLit(s *aig.Store, lit aig.Lit, opts Options) aig.Lit {
	n := s.Node(lit.Var())
	if !n.IsAnd() {
		return lit
	}

	ops := collectSupergate(s, lit, opts)
	if ops == nil {
		// Constant-0 supergate: a variable and its complement both
		// appeared among the operands.
		return aig.LitConst0
	}

	balancedOps := make([]operand, len(ops))
	for i, op := range ops {
		balancedLit := balanceLit(s, op.lit, opts)
		balancedOps[i] = operand{lit: balancedLit, level: s.Node(balancedLit.Var()).Level()}
	}

	return rebuild(s, balancedOps)
}

// collectSupergate descends into fanin chains from root while a fanin is a
// non-complemented AND with exactly one fanout (or, under Selective, a
// shared AND one level below its parent, i.e. on the parent's critical
// path), accumulating the maximal
// operand list. Returns nil if the supergate collapses to constant 0.
func collectSupergate(s *aig.Store, root aig.Lit, opts Options) []operand {
	var ops []operand

	var walk func(lit aig.Lit, parentLevel uint32)
	walk = func(lit aig.Lit, parentLevel uint32) {
		n := s.Node(lit.Var())
		absorbable := n.IsAnd() && !lit.IsCompl() &&
			(s.FanoutCount(lit.Var()) <= 1 ||
				(opts.Selective && n.Level()+1 == parentLevel))
		if !absorbable {
			ops = append(ops, operand{lit: lit, level: n.Level()})
			return
		}
		walk(n.Fanin0(), n.Level())
		walk(n.Fanin1(), n.Level())
	}

	n := s.Node(root.Var())
	walk(n.Fanin0(), n.Level())
	walk(n.Fanin1(), n.Level())

	for _, op := range ops {
		for _, other := range ops {
			if op.lit == other.lit.Not() {
				return nil
			}
		}
	}
	return dedupOperands(ops)
}

// dedupOperands merges repeated literals (AndLit(a,a) == a) and drops
// trivially-true constant-1 operands.
func dedupOperands(ops []operand) []operand {
	seen := make(map[aig.Lit]bool, len(ops))
	out := ops[:0]
	for _, op := range ops {
		if op.lit == aig.LitConst1 {
			continue
		}
		if seen[op.lit] {
			continue
		}
		seen[op.lit] = true
		out = append(out, op)
	}
	if len(out) == 0 {
		return []operand{{lit: aig.LitConst1, level: 0}}
	}
	return out
}

// rebuild repeatedly pops the two lowest-level operands, ANDs them, and
// re-inserts the result at its natural level, biasing the tail toward
// sharing with an already-existing node before each merge.
func rebuild(s *aig.Store, ops []operand) aig.Lit {
	if len(ops) == 1 {
		return ops[0].lit
	}

	work := append([]operand(nil), ops...)
	for len(work) > 1 {
		sort.Slice(work, func(i, j int) bool { return work[i].level < work[j].level })
		permuteForSharing(s, work)

		a, b := work[0], work[1]
		rest := append([]operand(nil), work[2:]...)

		resultLit := s.AndLit(a.lit, b.lit)
		work = append(rest, operand{lit: resultLit, level: s.Node(resultLit.Var()).Level()})
	}
	return work[0].lit
}

// permuteForSharing scans the tail of work (from the third-lowest-level
// entry on) for an operand whose AND with the second operand already
// exists in the store's structural hash table, and swaps it into the
// first slot so the next merge reuses an existing node instead of
// allocating one.
func permuteForSharing(s *aig.Store, work []operand) {
	if len(work) < 3 {
		return
	}
	second := work[1]
	for i := 2; i < len(work); i++ {
		if existingAnd(s, work[i].lit, second.lit) {
			work[0], work[i] = work[i], work[0]
			return
		}
	}
}

// existingAnd reports whether AND(a, b) already has a node in the store,
// without creating one.
func existingAnd(s *aig.Store, a, b aig.Lit) bool {
	return s.ProbeAnd(a, b)
}
