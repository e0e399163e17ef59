package aig

import "fmt"

// IntegrityViolation reports a failure of one of the graph's structural
// invariants. It is returned by (*Store).Verify and never by mutating
// operations themselves — construction is total and never fails.
type IntegrityViolation struct {
	Rule string // short invariant name, e.g. "fanin-order", "hash-uniqueness"
	Node ID
	Msg  string
}

func (e *IntegrityViolation) Error() string {
	return fmt.Sprintf("integrity violation [%s] at node %d: %s", e.Rule, e.Node, e.Msg)
}

// IntegrityViolations aggregates every violation found by a single Verify
// call into one error value.
type IntegrityViolations []*IntegrityViolation

func (e IntegrityViolations) Error() string {
	if len(e) == 0 {
		return "no integrity violations"
	}
	return fmt.Sprintf("%d integrity violations, first: %s", len(e), e[0].Error())
}
