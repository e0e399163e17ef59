package cut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/cut"
)

func TestEnumerateAllIncludesTrivialAndFullCut(t *testing.T) {
	s := aig.New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()

	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)
	s.CreatePO(abc)

	cuts := cut.EnumerateAll(s, 4, 8)

	abCuts := cuts[ab.Var()]
	require.NotEmpty(t, abCuts)
	found := false
	for _, c := range abCuts {
		if len(c.Leaves) == 1 && c.Leaves[0] == ab.Var() {
			found = true
		}
	}
	assert.True(t, found, "node must carry its own trivial single-leaf cut")

	abcCuts := cuts[abc.Var()]
	require.NotEmpty(t, abcCuts)
	hasFullCut := false
	for _, c := range abcCuts {
		if len(c.Leaves) == 3 {
			hasFullCut = true
			assert.True(t, c.Table.Bit(0b111), "abc must evaluate true when a,b,c are all 1")
			assert.False(t, c.Table.Bit(0b011), "abc must evaluate false when c is 0")
		}
	}
	assert.True(t, hasFullCut, "expected a 3-leaf cut spanning all three primary inputs")
}

func TestEnumerateAllRespectsKBound(t *testing.T) {
	s := aig.New(16)
	pis := make([]aig.Lit, 6)
	for i := range pis {
		pis[i] = s.CreatePI()
	}
	acc := pis[0]
	for i := 1; i < len(pis); i++ {
		acc = s.AndLit(acc, pis[i])
	}
	s.CreatePO(acc)

	cuts := cut.EnumerateAll(s, 4, 16)
	for _, c := range cuts[acc.Var()] {
		assert.LessOrEqual(t, len(c.Leaves), 4)
	}
}

func TestEnumerateAllDropsDominatedCuts(t *testing.T) {
	s := aig.New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	ab := s.AndLit(a, b)
	s.CreatePO(ab)

	cuts := cut.EnumerateAll(s, 4, 16)
	abCuts := cuts[ab.Var()]
	seen := make(map[string]bool)
	for _, c := range abCuts {
		key := ""
		for _, l := range c.Leaves {
			key += string(rune(l)) + ","
		}
		assert.False(t, seen[key], "duplicate leaf set retained")
		seen[key] = true
	}
}
