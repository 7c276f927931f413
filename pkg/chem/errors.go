package chem

import "fmt"

// SyntaxError reports an invalid SMILES string.
type SyntaxError struct {
	SMILES string
	Pos    int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid SMILES %q at position %d: %s", e.SMILES, e.Pos, e.Msg)
}

// ValenceError reports an organic-subset atom with more bonds than any
// allowed valence.
type ValenceError struct {
	Atom    int
	Element string
	Valence int
	Allowed []int
}

func (e *ValenceError) Error() string {
	return fmt.Sprintf("explicit valence %d for atom %d (%s) is greater than permitted %v", e.Valence, e.Atom, e.Element, e.Allowed)
}

// KekuleError reports aromatic atoms that cannot be written with
// alternating single and double bonds.
type KekuleError struct {
	Atoms  []int
	Reason string
}

func (e *KekuleError) Error() string {
	return fmt.Sprintf("can't kekulize atoms %v: %s", e.Atoms, e.Reason)
}
