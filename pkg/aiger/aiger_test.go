package aiger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aiger"
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

func TestWriteReadRoundTripCombinational(t *testing.T) {
	s := aig.New(8)
	a, b, c := s.CreatePI(), s.CreatePI(), s.CreatePI()
	s.SetName(a.Var(), "a")
	s.SetName(c.Var(), "c")
	ab := s.AndLit(a, b.Not())
	out := s.AndLit(ab, c)
	s.CreatePO(out)
	po2 := s.CreatePO(b)
	s.SetName(po2, "pass_b")

	var buf bytes.Buffer
	require.NoError(t, aiger.Write(&buf, s, aiger.WriteOptions{Symbols: true}))

	got, syms, err := aiger.Read(bytes.NewReader(buf.Bytes()), aiger.ReadOptions{})
	require.NoError(t, err)
	assert.Empty(t, got.Verify())
	assert.Equal(t, 3, len(got.PIs()))
	assert.Equal(t, 2, len(got.POs()))
	assert.Equal(t, 2, got.NumAnds())
	assert.Equal(t, []string{"a", "", "c"}, syms.PIs)
	assert.Equal(t, []string{"", "pass_b"}, syms.POs)

	for bits := 0; bits < 8; bits++ {
		inputs := map[aig.ID]bool{
			got.PIs()[0]: bits&1 != 0,
			got.PIs()[1]: bits&2 != 0,
			got.PIs()[2]: bits&4 != 0,
		}
		want0 := inputs[got.PIs()[0]] && !inputs[got.PIs()[1]] && inputs[got.PIs()[2]]
		assert.Equal(t, want0, evalLit(got, got.Node(got.POs()[0]).Fanin0(), inputs))
		assert.Equal(t, inputs[got.PIs()[1]], evalLit(got, got.Node(got.POs()[1]).Fanin0(), inputs))
	}
}

func TestWriteReadRoundTripCompact(t *testing.T) {
	s := aig.New(8)
	a, b, c := s.CreatePI(), s.CreatePI(), s.CreatePI()
	out := s.AndLit(s.AndLit(a, b), c)
	s.CreatePO(out)

	var buf bytes.Buffer
	require.NoError(t, aiger.Write(&buf, s, aiger.WriteOptions{}))

	got, _, err := aiger.Read(bytes.NewReader(buf.Bytes()), aiger.ReadOptions{Compact: true})
	require.NoError(t, err)
	assert.Empty(t, got.Verify())
	assert.Equal(t, 2, got.NumAnds())

	for bits := 0; bits < 8; bits++ {
		inputs := map[aig.ID]bool{
			got.PIs()[0]: bits&1 != 0,
			got.PIs()[1]: bits&2 != 0,
			got.PIs()[2]: bits&4 != 0,
		}
		want := inputs[got.PIs()[0]] && inputs[got.PIs()[1]] && inputs[got.PIs()[2]]
		assert.Equal(t, want, evalLit(got, got.Node(got.POs()[0]).Fanin0(), inputs))
	}
}

func TestWriteReadRoundTripLatch(t *testing.T) {
	s := aig.New(8)
	x := s.CreatePI()
	out, idx := s.CreateLatch()
	s.SetLatchNext(idx, x.Not())
	s.SetLatchReset(idx, aig.ResetOne)
	s.CreatePO(out)

	var buf bytes.Buffer
	require.NoError(t, aiger.Write(&buf, s, aiger.WriteOptions{}))

	got, _, err := aiger.Read(bytes.NewReader(buf.Bytes()), aiger.ReadOptions{})
	require.NoError(t, err)
	assert.Empty(t, got.Verify())
	require.Len(t, got.Latches(), 1)
	l := got.Latches()[0]
	assert.Equal(t, aig.ResetOne, l.Reset)
	assert.Equal(t, aig.NewLit(got.PIs()[0], true), got.Node(l.In).Fanin0())
	assert.Equal(t, aig.NewLit(l.Out, false), got.Node(got.POs()[0]).Fanin0())
}

func TestReadBadHeaderKeyword(t *testing.T) {
	_, _, err := aiger.Read(bytes.NewReader([]byte("aag 1 1 0 1 0\n1\n2\n")), aiger.ReadOptions{})
	require.Error(t, err)
}

func TestReadRejectsJustice(t *testing.T) {
	_, _, err := aiger.Read(bytes.NewReader([]byte("aig 1 1 0 1 0 0 0 1\n2\n")), aiger.ReadOptions{})
	require.Error(t, err)
}
