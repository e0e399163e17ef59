package resub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/resub"
)

func evalLit(s *aig.Store, l aig.Lit, inputs map[aig.ID]bool) bool {
	var eval func(id aig.ID) bool
	eval = func(id aig.ID) bool {
		if v, ok := inputs[id]; ok {
			return v
		}
		n := s.Node(id)
		if n.Kind() == aig.KindConst1 {
			return true
		}
		a, b := n.Fanin0(), n.Fanin1()
		return (eval(a.Var()) != a.IsCompl()) && (eval(b.Var()) != b.IsCompl())
	}
	return eval(l.Var()) != l.IsCompl()
}

// TestRunFindsSingleDivisorMatch builds a&(a&b), where a&b is already
// computed elsewhere and kept alive by its own PO, and checks
// resubstitution collapses the redundant outer AND onto the existing
// divisor instead of keeping its own copy of the same function.
func TestRunFindsSingleDivisorMatch(t *testing.T) {
	s := aig.New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	ab := s.AndLit(a, b)
	s.CreatePO(ab)
	root := s.AndLit(a, ab)
	s.CreatePO(root)

	before := s.NumAnds()

	stats := resub.Run(s, resub.Options{})
	s.Cleanup()

	assert.Empty(t, s.Verify())
	assert.Greater(t, stats.NodesResubstituted, 0)
	assert.Less(t, s.NumAnds(), before)

	for bits := 0; bits < 4; bits++ {
		inputs := map[aig.ID]bool{a.Var(): bits&1 != 0, b.Var(): bits&2 != 0}
		want := inputs[a.Var()] && inputs[b.Var()]
		got := evalLit(s, s.Node(s.POs()[1]).Fanin0(), inputs)
		assert.Equal(t, want, got, "bits=%02b", bits)
	}
}

func TestRunLeavesAlreadyMinimalAndAlone(t *testing.T) {
	s := aig.New(4)
	a := s.CreatePI()
	b := s.CreatePI()
	ab := s.AndLit(a, b)
	s.CreatePO(ab)

	before := s.NumAnds()
	resub.Run(s, resub.Options{})
	s.Cleanup()

	assert.Empty(t, s.Verify())
	assert.Equal(t, before, s.NumAnds())
}
