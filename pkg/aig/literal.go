// Package aig implements the strashed And-Inverter Graph store: the
// arena-backed node table, structural hash-consing, fanout index and the
// traversal primitives the local-rewriting passes build on.
package aig

import "fmt"

// ID identifies a node's arena slot. ID 0 is always the constant node.
type ID uint32

// Lit is a literal: a node ID with a complement bit in the low bit,
// lit = (id << 1) | complement_bit. Lit is a newtype around an integer
// rather than a tagged pointer.
type Lit uint32

// ConstID is the arena slot of the always-present constant-1 node.
const ConstID ID = 0

// LitConst0 and LitConst1 are the literals for the two constant values.
const (
	LitConst0 Lit = 0
	LitConst1 Lit = 1
	// LitNull is returned by operations that have no meaningful literal
	// result.
	LitNull Lit = ^Lit(0)
)

// NewLit builds the literal for a variable with the given complementation.
func NewLit(id ID, compl bool) Lit {
	l := Lit(id) << 1
	if compl {
		l |= 1
	}
	return l
}

// Var returns the literal's underlying node ID.
func (l Lit) Var() ID { return ID(l >> 1) }

// IsCompl reports whether the literal carries the inversion bit.
func (l Lit) IsCompl() bool { return l&1 != 0 }

// Not returns the complement of l.
func (l Lit) Not() Lit { return l ^ 1 }

// Regular returns l with the complement bit cleared.
func (l Lit) Regular() Lit { return l &^ 1 }

// NotCond returns l complemented iff cond is true.
func (l Lit) NotCond(cond bool) Lit {
	if cond {
		return l.Not()
	}
	return l
}

// IsConst reports whether l denotes one of the two constant values.
func (l Lit) IsConst() bool { return l.Var() == ConstID }

func (l Lit) String() string {
	if l == LitNull {
		return "<null>"
	}
	c := ""
	if l.IsCompl() {
		c = "!"
	}
	return fmt.Sprintf("%s%d", c, l.Var())
}
