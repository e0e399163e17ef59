// Package aiger reads and writes the AIGER binary interchange format: the
// header line, ASCII latch/output sections, the base-128 delta-encoded AND
// section, and the optional trailing symbol table.
package aiger

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/pass"
)

// header holds the parsed "aig M I L O A [B C J F]" line.
type header struct {
	m, i, l, o, a int
	b, c, j, f    int
}

// ReadOptions controls how Read materializes the graph.
type ReadOptions struct {
	// Compact restrashes the graph after loading (the `-c` flag): ids are
	// renumbered in DFS order and any redundancy the raw file encoded (two
	// AND records with the same fanin pair, one no longer referenced) is
	// collapsed. Without it, every AND record is kept as written, in file
	// order, with no hash-consing; PIs keep their file var numbers as ids,
	// while latch and AND ids are offset because each latch also allocates
	// its next-state node and each PO its own node.
	Compact bool
}

// Read parses one AIGER binary-format object from r and returns the graph
// it describes along with its symbol table (names for unnamed PIs, latches
// and POs come back as "").
func Read(r io.Reader, opts ReadOptions) (*aig.Store, SymbolTable, error) {
	br := bufio.NewReader(r)

	h, err := readHeader(br)
	if err != nil {
		return nil, SymbolTable{}, err
	}
	if h.j != 0 || h.f != 0 {
		return nil, SymbolTable{}, ErrUnsupportedFeature
	}
	if h.b != 0 || h.c != 0 {
		return nil, SymbolTable{}, ErrUnsupportedFeature
	}
	if h.m != h.i+h.l+h.a {
		return nil, SymbolTable{}, errors.Wrapf(ErrBadHeader, "M=%d but I+L+A=%d", h.m, h.i+h.l+h.a)
	}

	s := aig.New(h.m + h.o)

	// varToLit maps a file var number (1..M) to the literal it was assigned
	// in this store; index 0 is unused (the constant is handled specially
	// by fileLit, never looked up here).
	varToLit := make([]aig.Lit, h.m+1)

	for v := 1; v <= h.i; v++ {
		varToLit[v] = s.CreatePI()
	}

	type latchIdx struct {
		idx      int
		nextFile int
	}
	latchIdxs := make([]latchIdx, h.l)
	for k := 0; k < h.l; k++ {
		out, idx := s.CreateLatch()
		varToLit[h.i+k+1] = out
		nextTok, resetTok, err := readLatchLine(br)
		if err != nil {
			return nil, SymbolTable{}, errors.Wrap(err, "latch section")
		}
		latchIdxs[k] = latchIdx{idx: idx, nextFile: nextTok}
		ownLit := 2 * (h.i + k + 1)
		switch {
		case resetTok == nil:
			s.SetLatchReset(idx, aig.ResetZero)
		case *resetTok == 0:
			s.SetLatchReset(idx, aig.ResetZero)
		case *resetTok == 1:
			s.SetLatchReset(idx, aig.ResetOne)
		case *resetTok == ownLit:
			s.SetLatchReset(idx, aig.ResetDontCare)
		default:
			return nil, SymbolTable{}, ErrBadLatchReset
		}
	}

	poFile := make([]int, h.o)
	for k := 0; k < h.o; k++ {
		tok, err := readIntLine(br)
		if err != nil {
			return nil, SymbolTable{}, errors.Wrap(err, "output section")
		}
		poFile[k] = tok
		s.CreatePO(aig.LitConst0)
	}

	for k := 0; k < h.a; k++ {
		v := h.i + h.l + k + 1
		lhs := 2 * v
		delta0, err := readDelta(br)
		if err != nil {
			return nil, SymbolTable{}, errors.Wrap(err, "AND section")
		}
		delta1, err := readDelta(br)
		if err != nil {
			return nil, SymbolTable{}, errors.Wrap(err, "AND section")
		}
		rhs0 := lhs - int(delta0)
		rhs1 := rhs0 - int(delta1)

		id := s.ReservePlaceholder()
		varToLit[v] = aig.NewLit(id, false)
		s.AndRaw(id, fileLit(varToLit, rhs0), fileLit(varToLit, rhs1))
	}

	for k, po := range poFile {
		s.SetDriver(s.POs()[k], fileLit(varToLit, po))
	}
	for _, li := range latchIdxs {
		s.SetLatchNext(li.idx, fileLit(varToLit, li.nextFile))
	}

	if _, err := readSymbolTable(br, s, h); err != nil {
		return nil, SymbolTable{}, err
	}

	if opts.Compact {
		s = pass.Renumber(s)
	}
	return s, BuildSymbolTable(s), nil
}

// fileLit resolves a raw AIGER literal integer (var*2 + complement) to the
// store literal it names, special-casing literals 0 and 1 as the constant
// (file var 0 is never itself present in varToLit).
func fileLit(varToLit []aig.Lit, fileLit int) aig.Lit {
	v := fileLit / 2
	compl := fileLit%2 == 1
	if v == 0 {
		if compl {
			return aig.LitConst1
		}
		return aig.LitConst0
	}
	return varToLit[v].NotCond(compl)
}

func readHeader(br *bufio.Reader) (header, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return header{}, errors.Wrap(ErrBadHeader, "empty input")
	}
	fields := strings.Fields(line)
	if len(fields) < 6 || fields[0] != "aig" {
		return header{}, errors.Wrapf(ErrBadHeader, "header line %q", strings.TrimSpace(line))
	}
	ints := make([]int, len(fields)-1)
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return header{}, errors.Wrapf(ErrBadHeader, "field %q is not an integer", f)
		}
		ints[i] = n
	}
	h := header{m: ints[0], i: ints[1], l: ints[2], o: ints[3], a: ints[4]}
	if len(ints) > 5 {
		h.b = ints[5]
	}
	if len(ints) > 6 {
		h.c = ints[6]
	}
	if len(ints) > 7 {
		h.j = ints[7]
	}
	if len(ints) > 8 {
		h.f = ints[8]
	}
	return h, nil
}

func readIntLine(br *bufio.Reader) (int, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return 0, errors.Wrap(ErrTruncated, "expected a line, got EOF")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, errors.Wrap(ErrTruncated, "expected a line, got a blank one")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, errors.Wrapf(ErrBadHeader, "expected an integer, got %q", fields[0])
	}
	return n, nil
}

// readLatchLine reads one "next_lit[ reset]" line, returning the reset field
// as nil when the file omits it (the default-0 case).
func readLatchLine(br *bufio.Reader) (next int, reset *int, err error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return 0, nil, errors.Wrap(ErrTruncated, "expected a latch line, got EOF")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, nil, errors.Wrap(ErrTruncated, "expected a latch line, got a blank one")
	}
	next, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, nil, errors.Wrapf(ErrBadHeader, "latch next literal %q", fields[0])
	}
	if len(fields) > 1 {
		r, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, nil, errors.Wrapf(ErrBadHeader, "latch reset field %q", fields[1])
		}
		reset = &r
	}
	return next, reset, nil
}

// readDelta decodes one base-128, little-endian-grouped variable-length
// unsigned integer: each byte holds 7 value bits, with the high bit set on
// every byte but the last.
func readDelta(br *bufio.Reader) (uint64, error) {
	var x uint64
	var shift uint
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, errors.Wrap(ErrTruncated, "AND section ended mid-delta")
		}
		x |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return x, nil
		}
		shift += 7
	}
}

// readSymbolTable consumes the optional trailing "i<idx> name" / "l<idx>
// name" / "o<idx> name" lines, applying each straight onto s, stopping at a
// bare "c" line or EOF.
func readSymbolTable(br *bufio.Reader, s *aig.Store, h header) (SymbolTable, error) {
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if err != nil {
				break
			}
			continue
		}
		if trimmed == "c" {
			break
		}
		if len(trimmed) < 2 {
			break
		}
		kind := trimmed[0]
		rest := trimmed[1:]
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			break
		}
		idx, convErr := strconv.Atoi(rest[:sp])
		if convErr != nil {
			break
		}
		name := rest[sp+1:]
		switch kind {
		case 'i':
			if idx >= 0 && idx < h.i {
				s.SetName(s.PIs()[idx], name)
			}
		case 'l':
			if idx >= 0 && idx < h.l {
				s.SetName(s.Latches()[idx].Out, name)
			}
		case 'o':
			if idx >= 0 && idx < h.o {
				s.SetName(s.POs()[idx], name)
			}
		}
		if err != nil {
			break
		}
	}
	return BuildSymbolTable(s), nil
}
