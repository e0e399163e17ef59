package aig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAndLitIdempotenceAndAbsorption(t *testing.T) {
	s := New(8)
	a := s.CreatePI()
	b := s.CreatePI()

	assert.Equal(t, a, s.AndLit(a, a), "AND(a,a) collapses to a")
	assert.Equal(t, LitConst0, s.AndLit(a, a.Not()), "AND(a,!a) is constant-0")
	assert.Equal(t, b, s.AndLit(LitConst1, b), "AND(1,b) is b")
	assert.Equal(t, LitConst0, s.AndLit(LitConst0, b), "AND(0,b) is 0")
}

func TestAndLitHashConsing(t *testing.T) {
	s := New(8)
	a := s.CreatePI()
	b := s.CreatePI()

	l1 := s.AndLit(a, b)
	l2 := s.AndLit(a, b)
	assert.Equal(t, l1, l2, "identical fanins hash-cons to the same node")
	assert.Equal(t, 1, s.NumAnds())

	l3 := s.AndLit(b, a)
	assert.Equal(t, l1, l3, "fanin order does not matter")
}

func TestAndLitInvariants(t *testing.T) {
	s := New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	lit := s.AndLit(a, b)
	n := s.Node(lit.Var())
	require.True(t, n.IsAnd())
	assert.Less(t, n.Fanin0().Var(), n.Fanin1().Var())
	assert.Equal(t, uint32(1), n.Level())
	assert.Empty(t, s.Verify())
}

func TestReplaceRedirectsFanoutAndCleansUpDangling(t *testing.T) {
	s := New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()

	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)
	s.CreatePO(abc)

	require.Equal(t, 2, s.NumAnds())

	// Replace the AND(a,b) subterm with c directly.
	s.Replace(ab.Var(), c)

	assert.Empty(t, s.Verify())
	// AND(c,c) collapses to c, so abc's node should now be gone too,
	// leaving no AND nodes at all.
	assert.Equal(t, 0, s.NumAnds())
}

func TestCleanupRemovesDanglingAnds(t *testing.T) {
	s := New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	ab := s.AndLit(a, b)
	_ = ab // never referenced by a PO or another AND

	assert.Equal(t, 1, s.NumAnds())
	removed := s.Cleanup()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.NumAnds())
}

func TestDFSIsTopologicallyOrdered(t *testing.T) {
	s := New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()
	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)
	s.CreatePO(abc)

	order := s.DFS(false)
	require.Len(t, order, 2)
	pos := map[ID]int{}
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos[ab.Var()], pos[abc.Var()], "ab must be visited before abc")
}

func TestDagSize(t *testing.T) {
	s := New(8)
	a := s.CreatePI()
	b := s.CreatePI()
	c := s.CreatePI()
	ab := s.AndLit(a, b)
	abc := s.AndLit(ab, c)

	assert.Equal(t, 2, s.DagSize(abc))
	// calling twice must leave marks cleared
	assert.Equal(t, 2, s.DagSize(abc))
	assert.Empty(t, s.Verify())
}
