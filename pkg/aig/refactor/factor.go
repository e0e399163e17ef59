package refactor

import "github.com/aigforge/aigforge/pkg/aig"

type exprKind int

const (
	exprLit exprKind = iota
	exprAnd
	exprOr
	exprConst
)

// expr is a multi-level Boolean expression tree over the cut's leaves,
// the output of factoring a sum-of-products cover.
type expr struct {
	kind     exprKind
	varIdx   int
	neg      bool
	constVal bool
	kids     []*expr
}

func litExpr(varIdx int, neg bool) *expr { return &expr{kind: exprLit, varIdx: varIdx, neg: neg} }
func constExpr(v bool) *expr             { return &expr{kind: exprConst, constVal: v} }

// Factor turns a sum-of-products cover into an AND/OR tree by repeatedly
// dividing out the literal shared by the most cubes — a greedy, purely
// literal-based (not algebraic) form of Boolean factoring. It is not
// guaranteed to find the most compact factored form, only a correct one
// no worse than the flat two-level cover.
func Factor(cubes []cube, k int) *expr {
	if len(cubes) == 0 {
		return constExpr(false)
	}
	if len(cubes) == 1 {
		return cubeToAnd(cubes[0])
	}

	varIdx, val, count := mostCommonLiteral(cubes, k)
	if count < 2 {
		kids := make([]*expr, len(cubes))
		for i, c := range cubes {
			kids[i] = cubeToAnd(c)
		}
		return orExpr(kids)
	}

	var withLit, without []cube
	for _, c := range cubes {
		if c[varIdx] == val {
			rest := append(cube(nil), c...)
			rest[varIdx] = -1
			withLit = append(withLit, rest)
		} else {
			without = append(without, c)
		}
	}

	quotient := Factor(withLit, k)
	lhs := andExpr([]*expr{litExpr(varIdx, val == 0), quotient})
	if len(without) == 0 {
		return lhs
	}
	return orExpr([]*expr{lhs, Factor(without, k)})
}

func cubeToAnd(c cube) *expr {
	var lits []*expr
	for i, v := range c {
		if v < 0 {
			continue
		}
		lits = append(lits, litExpr(i, v == 0))
	}
	if len(lits) == 0 {
		return constExpr(true)
	}
	return andExpr(lits)
}

func andExpr(kids []*expr) *expr {
	if len(kids) == 1 {
		return kids[0]
	}
	return &expr{kind: exprAnd, kids: kids}
}

func orExpr(kids []*expr) *expr {
	if len(kids) == 1 {
		return kids[0]
	}
	return &expr{kind: exprOr, kids: kids}
}

func mostCommonLiteral(cubes []cube, k int) (varIdx int, val int8, count int) {
	type key struct {
		v int
		b int8
	}
	counts := make(map[key]int)
	for _, c := range cubes {
		for i, v := range c {
			if v >= 0 {
				counts[key{i, v}]++
			}
		}
	}
	best := -1
	var bestKey key
	for i := 0; i < k; i++ {
		for _, b := range [2]int8{0, 1} {
			if n := counts[key{i, b}]; n > best {
				best = n
				bestKey = key{i, b}
			}
		}
	}
	if best < 0 {
		return 0, 0, 0
	}
	return bestKey.v, bestKey.b, best
}

// size estimates how many AND nodes e would need if built with no reuse of
// existing store structure: every n-ary AND or OR node (OR expressed as a
// NOT-AND-NOT, whose inverters are free edge bits) costs n-1 two-input AND
// gates.
func size(e *expr) int {
	switch e.kind {
	case exprLit, exprConst:
		return 0
	default:
		total := 0
		for _, k := range e.kids {
			total += size(k)
		}
		if n := len(e.kids); n >= 2 {
			total += n - 1
		}
		return total
	}
}

// Build grafts e into the store over the given leaf literals and returns
// the literal for its output.
func Build(s *aig.Store, e *expr, leaves []aig.Lit) aig.Lit {
	switch e.kind {
	case exprConst:
		if e.constVal {
			return aig.LitConst1
		}
		return aig.LitConst0
	case exprLit:
		return leaves[e.varIdx].NotCond(e.neg)
	case exprAnd:
		lits := make([]aig.Lit, len(e.kids))
		for i, k := range e.kids {
			lits[i] = Build(s, k, leaves)
		}
		return buildBalancedAnd(s, lits)
	case exprOr:
		// OR(a, b, ...) = NOT(AND(NOT a, NOT b, ...)); inverters are free
		// edge bits, so this only costs the AND gates, balanced the same
		// way a flat AND is.
		lits := make([]aig.Lit, len(e.kids))
		for i, k := range e.kids {
			lits[i] = Build(s, k, leaves).Not()
		}
		return buildBalancedAnd(s, lits).Not()
	}
	panic("refactor: unreachable expr kind")
}

// buildBalancedAnd ANDs every literal in lits into a depth-minimised tree
// (split at the midpoint rather than folded left-to-right), the same
// motivation as pkg/aig/balance's supergate rebuild: an n-ary AND/OR costs
// n-1 gates regardless of shape, so there is no reason to pay for a
// deeper chain than necessary.
func buildBalancedAnd(s *aig.Store, lits []aig.Lit) aig.Lit {
	if len(lits) == 1 {
		return lits[0]
	}
	mid := len(lits) / 2
	left := buildBalancedAnd(s, lits[:mid])
	right := buildBalancedAnd(s, lits[mid:])
	return s.AndLit(left, right)
}
