package aiger

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aigforge/aigforge/pkg/aig"
)

// WriteOptions controls what Write emits alongside the graph itself.
type WriteOptions struct {
	// Symbols appends the trailing i/l/o symbol-table lines for every
	// named PI, latch and PO, terminated by "c".
	Symbols bool
}

// Write serialises s as one AIGER binary-format object to w. The graph's
// own node ids need not already be in AIGER's var order (constant, PIs,
// latch outputs, then ANDs in topological order) or even contiguous: Write
// computes its own file-var numbering from s.PIs/s.Latches/s.DFS rather
// than assuming it, so it is correct on a store that has not just come out
// of pass.Renumber.
func Write(w io.Writer, s *aig.Store, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	order := s.DFS(false)
	fileVar := make(map[aig.ID]int, len(s.PIs())+len(s.Latches())+len(order))
	n := 0
	for _, pi := range s.PIs() {
		n++
		fileVar[pi] = n
	}
	for _, l := range s.Latches() {
		n++
		fileVar[l.Out] = n
	}
	for _, id := range order {
		n++
		fileVar[id] = n
	}

	lit := func(l aig.Lit) int {
		if l.Var() == aig.ConstID {
			if l.IsCompl() {
				return 1
			}
			return 0
		}
		return 2*fileVar[l.Var()] + boolToInt(l.IsCompl())
	}

	m, i, el, o, a := n, len(s.PIs()), len(s.Latches()), len(s.POs()), len(order)
	if _, err := fmt.Fprintf(bw, "aig %d %d %d %d %d\n", m, i, el, o, a); err != nil {
		return err
	}

	for _, l := range s.Latches() {
		next := lit(s.Node(l.In).Fanin0())
		var resetField int
		switch l.Reset {
		case aig.ResetZero:
			resetField = 0
		case aig.ResetOne:
			resetField = 1
		case aig.ResetDontCare:
			resetField = 2 * fileVar[l.Out]
		}
		if _, err := fmt.Fprintf(bw, "%d %d\n", next, resetField); err != nil {
			return err
		}
	}

	for _, po := range s.POs() {
		if _, err := fmt.Fprintf(bw, "%d\n", lit(s.Node(po).Fanin0())); err != nil {
			return err
		}
	}

	for _, id := range order {
		node := s.Node(id)
		// Canonical storage keeps fanin0.Var() < fanin1.Var(), but fileVar
		// follows PI/latch/DFS order rather than store ids, so either fanin
		// may carry the larger file literal; AIGER wants it first (rhs0).
		lhs := 2 * fileVar[id]
		rhs0 := lit(node.Fanin1())
		rhs1 := lit(node.Fanin0())
		if rhs0 < rhs1 {
			rhs0, rhs1 = rhs1, rhs0
		}
		if err := writeDelta(bw, uint64(lhs-rhs0)); err != nil {
			return err
		}
		if err := writeDelta(bw, uint64(rhs0-rhs1)); err != nil {
			return err
		}
	}

	if opts.Symbols {
		if err := writeSymbolTable(bw, s); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// writeDelta encodes x as a base-128, little-endian-grouped variable-length
// unsigned integer (the inverse of readDelta).
func writeDelta(bw *bufio.Writer, x uint64) error {
	for {
		b := byte(x & 0x7f)
		x >>= 7
		if x != 0 {
			if err := bw.WriteByte(b | 0x80); err != nil {
				return err
			}
			continue
		}
		return bw.WriteByte(b)
	}
}

func writeSymbolTable(bw *bufio.Writer, s *aig.Store) error {
	for i, id := range s.PIs() {
		if name := s.Node(id).Name(); name != "" {
			if _, err := fmt.Fprintf(bw, "i%d %s\n", i, name); err != nil {
				return err
			}
		}
	}
	for i, l := range s.Latches() {
		if name := s.Node(l.Out).Name(); name != "" {
			if _, err := fmt.Fprintf(bw, "l%d %s\n", i, name); err != nil {
				return err
			}
		}
	}
	for i, id := range s.POs() {
		if name := s.Node(id).Name(); name != "" {
			if _, err := fmt.Fprintf(bw, "o%d %s\n", i, name); err != nil {
				return err
			}
		}
	}
	_, err := bw.WriteString("c\n")
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
