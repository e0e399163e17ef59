// Package refactor implements node refactoring: replace an AND node's
// MFFC with a freshly factored AND/OR tree derived from the node's
// irredundant sum-of-products cover, accepting the rewrite only when it
// shrinks the graph.
package refactor

import "github.com/aigforge/aigforge/pkg/aig/cut"

// cube is one product term over k variables: cube[i] is 1 if variable i
// appears uncomplemented, 0 if complemented, -1 if absent from the term.
type cube []int8

// Isop computes an irredundant sum-of-products cover of f over k
// variables by the standard recursive unate-cofactor construction: split
// on the top variable, factor out the part of the function that does not
// depend on it (the consensus of both cofactors), and recurse on what's
// left of each cofactor. The result is a correct cover, not necessarily a
// minimum one — two-level minimality would need prime-implicant selection,
// which this engine skips in favor of handing any correct cover straight
// to the factorer.
func Isop(f cut.Truth, k int) []cube {
	raw := isopRec(f, k-1, k)
	out := make([]cube, len(raw))
	for i, c := range raw {
		out[i] = expandToPrime(c, f, k)
	}
	return out
}

// expandToPrime greedily drops literals from c, one pass left to right,
// keeping each drop only if the widened cube's onset is still contained in
// f. The recursive cofactor split above produces a correct but not
// necessarily prime cover; this raises each cube to a prime implicant,
// which is what the factorer needs to find the compact shared-literal
// forms a non-prime cover would hide.
func expandToPrime(c cube, f cut.Truth, k int) cube {
	out := append(cube(nil), c...)
	for i := 0; i < k; i++ {
		if out[i] == -1 {
			continue
		}
		saved := out[i]
		out[i] = -1
		if !coveredBy(out, f, k) {
			out[i] = saved
		}
	}
	return out
}

func coveredBy(c cube, f cut.Truth, k int) bool {
	return cut.And(cubeTruth(c, k), f.Not()).IsConst0()
}

func cubeTruth(c cube, k int) cut.Truth {
	t := cut.NewTruth(k)
	for i := range t.Words {
		t.Words[i] = 0xFFFFFFFF
	}
	for i, v := range c {
		if v == -1 {
			continue
		}
		ev := cut.ElemVar(k, i)
		if v == 0 {
			ev = ev.Not()
		}
		t = cut.And(t, ev)
	}
	return t
}

func isopRec(f cut.Truth, v, k int) []cube {
	if f.IsConst0() {
		return nil
	}
	if v < 0 {
		return []cube{newCube(k)}
	}

	f1 := f.Cofactor1(v)
	f0 := f.Cofactor0(v)
	common := cut.And(f0, f1)

	sopCommon := isopRec(common, v-1, k)

	notCommon := common.Not()
	f1only := cut.And(f1, notCommon)
	f0only := cut.And(f0, notCommon)

	sop1 := isopRec(f1only, v-1, k)
	sop0 := isopRec(f0only, v-1, k)
	setLit(sop1, v, 1)
	setLit(sop0, v, 0)

	out := make([]cube, 0, len(sopCommon)+len(sop1)+len(sop0))
	out = append(out, sopCommon...)
	out = append(out, sop1...)
	out = append(out, sop0...)
	return out
}

func newCube(k int) cube {
	c := make(cube, k)
	for i := range c {
		c[i] = -1
	}
	return c
}

func setLit(cubes []cube, v int, val int8) {
	for _, c := range cubes {
		c[v] = val
	}
}
