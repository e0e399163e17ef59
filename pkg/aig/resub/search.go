package resub

import (
	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/cut"
)

// candidatePoolMax bounds how many divisors the quadratic-or-worse search
// steps (one-gate and up) consider, keeping the combination loops sane
// regardless of how large Div2Max allowed the divisor set to grow.
const candidatePoolMax = 32

// found is a successful resubstitution: the gain it earns and a builder
// that grafts it into the store, invoked only for the winning candidate.
type found struct {
	gain  int
	build func(s *aig.Store) aig.Lit
}

// search tries replacements for root (truth table rootTable over the cut,
// MFFC size mffcSize) in increasing order of complexity, stopping at the
// first exact match. nStepsMax gates which complexity classes are tried:
// 0 only constant/single-divisor, 1 adds one-gate, 2 adds two-gate and
// paired double-divisor forms, 3 adds larger flat two-level forms.
func search(rootTable cut.Truth, mffcSize int, divisors []divisor, nStepsMax int) (found, bool) {
	if rootTable.IsConst0() {
		return found{gain: mffcSize, build: func(*aig.Store) aig.Lit { return aig.LitConst0 }}, true
	}
	if rootTable.IsConst1() {
		return found{gain: mffcSize, build: func(*aig.Store) aig.Lit { return aig.LitConst1 }}, true
	}

	normRoot, rootPhase := normalize(rootTable)
	for _, d := range divisors {
		normDiv, divPhase := normalize(d.table)
		if cut.Equal(normDiv, normRoot) {
			lit := d.lit.NotCond(rootPhase != divPhase)
			return found{gain: mffcSize, build: func(*aig.Store) aig.Lit { return lit }}, true
		}
	}

	if nStepsMax < 1 {
		return found{}, false
	}

	pos, neg := classifyUnate(rootTable, divisors)
	pos = truncate(pos, candidatePoolMax)
	neg = truncate(neg, candidatePoolMax)

	if f, ok := oneGate(rootTable, mffcSize, pos, neg); ok {
		return f, true
	}
	if nStepsMax < 2 {
		return found{}, false
	}

	if f, ok := twoGate(rootTable, mffcSize, pos, neg); ok {
		return f, true
	}
	if f, ok := pairedDouble(rootTable, mffcSize, pos, neg); ok {
		return f, true
	}
	if nStepsMax < 3 {
		return found{}, false
	}

	if f, ok := flatFour(rootTable, mffcSize, pos, neg); ok {
		return f, true
	}
	return found{}, false
}

func truncate(ds []divisor, max int) []divisor {
	if len(ds) > max {
		return ds[:max]
	}
	return ds
}

func buildOr(lits []aig.Lit) func(s *aig.Store) aig.Lit {
	return func(s *aig.Store) aig.Lit {
		acc := lits[0].Not()
		for _, l := range lits[1:] {
			acc = s.AndLit(acc, l.Not())
		}
		return acc.Not()
	}
}

func buildAnd(lits []aig.Lit) func(s *aig.Store) aig.Lit {
	return func(s *aig.Store) aig.Lit {
		acc := lits[0]
		for _, l := range lits[1:] {
			acc = s.AndLit(acc, l)
		}
		return acc
	}
}

// oneGate: OR of two positive unates, or AND of two negative unates.
func oneGate(root cut.Truth, mffcSize int, pos, neg []divisor) (found, bool) {
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			if cut.Equal(cut.Or(pos[i].table, pos[j].table), root) {
				lits := []aig.Lit{pos[i].lit, pos[j].lit}
				return found{gain: mffcSize - 1, build: buildOr(lits)}, true
			}
		}
	}
	for i := 0; i < len(neg); i++ {
		for j := i + 1; j < len(neg); j++ {
			if cut.Equal(cut.And(neg[i].table, neg[j].table), root) {
				lits := []aig.Lit{neg[i].lit, neg[j].lit}
				return found{gain: mffcSize - 1, build: buildAnd(lits)}, true
			}
		}
	}
	return found{}, false
}

// twoGate: three-operand OR of positive unates or AND of negative unates.
func twoGate(root cut.Truth, mffcSize int, pos, neg []divisor) (found, bool) {
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			ij := cut.Or(pos[i].table, pos[j].table)
			for k := j + 1; k < len(pos); k++ {
				if cut.Equal(cut.Or(ij, pos[k].table), root) {
					lits := []aig.Lit{pos[i].lit, pos[j].lit, pos[k].lit}
					return found{gain: mffcSize - 2, build: buildOr(lits)}, true
				}
			}
		}
	}
	for i := 0; i < len(neg); i++ {
		for j := i + 1; j < len(neg); j++ {
			ij := cut.And(neg[i].table, neg[j].table)
			for k := j + 1; k < len(neg); k++ {
				if cut.Equal(cut.And(ij, neg[k].table), root) {
					lits := []aig.Lit{neg[i].lit, neg[j].lit, neg[k].lit}
					return found{gain: mffcSize - 2, build: buildAnd(lits)}, true
				}
			}
		}
	}
	return found{}, false
}

// pairedDouble: (d0 & d1) | (d2 & d3) built from negative-unate pairs
// OR'd together, or (d0 | d1) & (d2 | d3) built from positive-unate pairs
// AND'd together.
func pairedDouble(root cut.Truth, mffcSize int, pos, neg []divisor) (found, bool) {
	type pair struct {
		a, b  divisor
		table cut.Truth
	}
	negPairs := make([]pair, 0, len(neg)*len(neg)/2)
	for i := 0; i < len(neg); i++ {
		for j := i + 1; j < len(neg); j++ {
			negPairs = append(negPairs, pair{neg[i], neg[j], cut.And(neg[i].table, neg[j].table)})
		}
	}
	for i := 0; i < len(negPairs); i++ {
		for j := i + 1; j < len(negPairs); j++ {
			if cut.Equal(cut.Or(negPairs[i].table, negPairs[j].table), root) {
				p, q := negPairs[i], negPairs[j]
				build := func(s *aig.Store) aig.Lit {
					t1 := s.AndLit(p.a.lit, p.b.lit)
					t2 := s.AndLit(q.a.lit, q.b.lit)
					return s.AndLit(t1.Not(), t2.Not()).Not()
				}
				return found{gain: mffcSize - 2, build: build}, true
			}
		}
	}

	posPairs := make([]pair, 0, len(pos)*len(pos)/2)
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			posPairs = append(posPairs, pair{pos[i], pos[j], cut.Or(pos[i].table, pos[j].table)})
		}
	}
	for i := 0; i < len(posPairs); i++ {
		for j := i + 1; j < len(posPairs); j++ {
			if cut.Equal(cut.And(posPairs[i].table, posPairs[j].table), root) {
				p, q := posPairs[i], posPairs[j]
				build := func(s *aig.Store) aig.Lit {
					t1 := s.AndLit(p.a.lit.Not(), p.b.lit.Not()).Not()
					t2 := s.AndLit(q.a.lit.Not(), q.b.lit.Not()).Not()
					return s.AndLit(t1, t2)
				}
				return found{gain: mffcSize - 2, build: build}, true
			}
		}
	}
	return found{}, false
}

// flatFour: four-operand OR of positive unates or AND of negative unates,
// the "larger two-level form" class.
func flatFour(root cut.Truth, mffcSize int, pos, neg []divisor) (found, bool) {
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			ij := cut.Or(pos[i].table, pos[j].table)
			for k := j + 1; k < len(pos); k++ {
				ijk := cut.Or(ij, pos[k].table)
				for l := k + 1; l < len(pos); l++ {
					if cut.Equal(cut.Or(ijk, pos[l].table), root) {
						lits := []aig.Lit{pos[i].lit, pos[j].lit, pos[k].lit, pos[l].lit}
						return found{gain: mffcSize - 3, build: buildOr(lits)}, true
					}
				}
			}
		}
	}
	for i := 0; i < len(neg); i++ {
		for j := i + 1; j < len(neg); j++ {
			ij := cut.And(neg[i].table, neg[j].table)
			for k := j + 1; k < len(neg); k++ {
				ijk := cut.And(ij, neg[k].table)
				for l := k + 1; l < len(neg); l++ {
					if cut.Equal(cut.And(ijk, neg[l].table), root) {
						lits := []aig.Lit{neg[i].lit, neg[j].lit, neg[k].lit, neg[l].lit}
						return found{gain: mffcSize - 3, build: buildAnd(lits)}, true
					}
				}
			}
		}
	}
	return found{}, false
}
