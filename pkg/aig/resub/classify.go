package resub

import (
	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/cut"
)

// divisor is one candidate replacement ingredient: a node reachable from
// the cut, paired with its truth table over the cut's leaf order.
type divisor struct {
	id    aig.ID
	lit   aig.Lit
	table cut.Truth
}

// simulateDivisors evaluates every id in divisors (and the root) over
// leaves, by exhaustive simulation of all 2^len(leaves) input patterns
// packed into words exactly as the rewriter's cut tables are.
func simulateDivisors(s *aig.Store, ids []aig.ID, leaves []aig.ID) []divisor {
	out := make([]divisor, len(ids))
	for i, id := range ids {
		out[i] = divisor{id: id, lit: aig.NewLit(id, false), table: cut.Simulate(s, id, leaves)}
	}
	return out
}

// normalize returns t complemented if needed so that minterm 0 evaluates
// to false, plus whether it was complemented to get there. Two divisors
// equal up to phase normalize to the same table, which is what the
// single-divisor search step and the unate classification below both rely
// on implicitly through direct table comparison.
func normalize(t cut.Truth) (cut.Truth, bool) {
	if t.Bit(0) {
		return t.Not(), true
	}
	return t, false
}

// classifyUnate splits divisors into those positive-unate with respect to
// root (div implies root: div & !root == 0, safe to OR together without
// ever exceeding root) and those negative-unate (root implies div: !div &
// root == 0, safe to AND together without ever falling short of root).
// A divisor can land in both lists (e.g. a constant, or root itself).
func classifyUnate(root cut.Truth, divisors []divisor) (pos, neg []divisor) {
	notRoot := root.Not()
	for _, d := range divisors {
		if cut.And(d.table, notRoot).IsConst0() {
			pos = append(pos, d)
		}
		if cut.And(d.table.Not(), root).IsConst0() {
			neg = append(neg, d)
		}
	}
	return pos, neg
}
