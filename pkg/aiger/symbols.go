package aiger

import "github.com/aigforge/aigforge/pkg/aig"

// SymbolTable is a YAML-serialisable projection of the names carried on a
// graph's PI, latch and PO nodes, in file order, so a caller can marshal the
// names without walking the store itself; no aigforge command marshals it.
// The node names themselves remain the single source of truth, carried
// across a pass.Renumber automatically.
type SymbolTable struct {
	PIs     []string `yaml:"pis,omitempty"`
	Latches []string `yaml:"latches,omitempty"`
	POs     []string `yaml:"pos,omitempty"`
}

// BuildSymbolTable derives a SymbolTable from the names currently set on s,
// in PI/latch/PO file order.
func BuildSymbolTable(s *aig.Store) SymbolTable {
	t := SymbolTable{
		PIs:     make([]string, len(s.PIs())),
		Latches: make([]string, len(s.Latches())),
		POs:     make([]string, len(s.POs())),
	}
	for i, id := range s.PIs() {
		t.PIs[i] = s.Node(id).Name()
	}
	for i, l := range s.Latches() {
		t.Latches[i] = s.Node(l.Out).Name()
	}
	for i, id := range s.POs() {
		t.POs[i] = s.Node(id).Name()
	}
	return t
}

// Apply sets t's names back onto s, in file order. Lengths longer than s's
// own PI/latch/PO count are ignored; shorter ones leave the remainder
// unnamed. Used when a symbol table was edited out-of-band (e.g. loaded
// from a YAML file distinct from the AIGER object) and needs reattaching.
func (t SymbolTable) Apply(s *aig.Store) {
	pis := s.PIs()
	for i, name := range t.PIs {
		if i >= len(pis) || name == "" {
			continue
		}
		s.SetName(pis[i], name)
	}
	latches := s.Latches()
	for i, name := range t.Latches {
		if i >= len(latches) || name == "" {
			continue
		}
		s.SetName(latches[i].Out, name)
	}
	pos := s.POs()
	for i, name := range t.POs {
		if i >= len(pos) || name == "" {
			continue
		}
		s.SetName(pos[i], name)
	}
}
