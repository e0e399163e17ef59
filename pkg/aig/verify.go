package aig

import "fmt"

// Verify checks every structural invariant of the graph and returns the
// (possibly empty) set of violations found. It never mutates the store.
func (s *Store) Verify() IntegrityViolations {
	var violations IntegrityViolations
	report := func(rule string, node ID, format string, args ...interface{}) {
		violations = append(violations, &IntegrityViolation{Rule: rule, Node: node, Msg: fmt.Sprintf(format, args...)})
	}

	seenPair := make(map[faninPair]ID, len(s.nodes))
	names := make(map[string]ID)

	for id := ID(0); id < ID(len(s.nodes)); id++ {
		n := &s.nodes[id]
		if n.kind == KindVoid {
			continue
		}
		if n.markA || n.markB {
			report("scratch-marks-clear", id, "mark bit left set")
		}

		if n.kind == KindAnd {
			a, b := n.fanin0, n.fanin1
			// invariant 1
			if a.Var() == b.Var() {
				report("fanin-distinct", id, "fanin0 and fanin1 share var %d", a.Var())
			}
			if a.Var() == ConstID && !a.IsCompl() {
				report("no-const1-fanin", id, "fanin0 is constant-1")
			}
			if b.Var() == ConstID && !b.IsCompl() {
				report("no-const1-fanin", id, "fanin1 is constant-1")
			}
			if a.Var() >= b.Var() {
				report("fanin-order", id, "fanin0.var=%d not < fanin1.var=%d", a.Var(), b.Var())
			}
			if a.Var() >= id || b.Var() >= id {
				report("acyclic", id, "fanin var >= node id")
			}
			// invariant 2
			key := faninPair{a, b}
			if other, ok := seenPair[key]; ok && other != id {
				report("hash-uniqueness", id, "duplicate of node %d for fanin pair %v", other, key)
			} else {
				seenPair[key] = id
			}
			// invariant 4 is folded into fanin-distinct / a==!b below
			if a == b.Not() {
				report("no-inverse-fanins", id, "fanin0 is the complement of fanin1")
			}
			// invariant 6
			wantLevel := 1 + max32(s.nodes[a.Var()].level, s.nodes[b.Var()].level)
			if n.level != wantLevel {
				report("level", id, "level=%d want %d", n.level, wantLevel)
			}
			// invariant 5
			wantPhase := (s.nodes[a.Var()].phase != a.IsCompl()) && (s.nodes[b.Var()].phase != b.IsCompl())
			if n.phase != wantPhase {
				report("phase", id, "phase=%v want %v", n.phase, wantPhase)
			}
		}

		if n.kind == KindPO && faninOf(n, 0) == LitNull {
			report("co-arity", id, "PO has no driver")
		}

		if n.name != "" {
			if other, ok := names[n.name]; ok && other != id {
				report("name-uniqueness", id, "name %q also used by node %d", n.name, other)
			} else {
				names[n.name] = id
			}
		}
	}

	// invariant 3: refcount equals live fanin-edge count
	for id := ID(0); id < ID(len(s.nodes)); id++ {
		n := &s.nodes[id]
		if n.kind == KindVoid {
			continue
		}
		if int(n.refs) != len(s.fanoutOf[id]) {
			report("refcount", id, "refs=%d but %d live fanout edges", n.refs, len(s.fanoutOf[id]))
		}
	}

	return violations
}
