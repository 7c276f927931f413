// Package chem provides a SMILES reader and the molecular descriptors used
// by the chemistry nodes.
//
// The reader accepts the OpenSMILES grammar (organic subset, bracket atoms,
// branches, ring closures, bond symbols and disconnections) and checks
// organic-subset valences. Aromatic systems stay aromatic; they are only
// checked for a valid Kekulé structure, so "c1cccc1" is rejected.
package chem

// BondOrder is the order of a bond.
type BondOrder int

// Bond orders.
const (
	BondSingle BondOrder = iota + 1
	BondDouble
	BondTriple
	BondQuadruple
	BondAromatic
)

// String returns the SMILES bond symbol.
func (o BondOrder) String() string {
	switch o {
	case BondSingle:
		return "-"
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondQuadruple:
		return "$"
	case BondAromatic:
		return ":"
	default:
		return "?"
	}
}

// Atom is an atom as written in the SMILES string.
type Atom struct {
	Element   string // "C", "Cl", "*" for the wildcard
	Aromatic  bool
	Bracket   bool
	Isotope   int
	Charge    int
	Class     int
	Chirality string
	// BracketH is the hydrogen count written inside brackets.
	BracketH int
}

// Bond connects two atoms by index.
type Bond struct {
	Begin  int
	End    int
	Order  BondOrder
	Stereo byte // '/' or '\\' for directional single bonds
}

// Other returns the atom at the other end of the bond.
func (b Bond) Other(atom int) int {
	if b.Begin == atom {
		return b.End
	}
	return b.Begin
}

// Molecule is the molecular graph read from a SMILES string.
//
// Hydrogen atoms written as plain [H] are folded into their neighbor's
// hydrogen count and are ignored by Degree and Neighbors.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	adj       [][]int // bond indices per atom
	hydrogens []int
	ringBond  []bool
}

// Neighbor is an adjacent heavy atom and the connecting bond.
type Neighbor struct {
	Atom int
	Bond int
}

// NumAtoms returns the number of atoms excluding folded hydrogens.
func (m *Molecule) NumAtoms() int {
	n := 0
	for i := range m.Atoms {
		if !m.isFoldedHydrogen(i) {
			n++
		}
	}
	return n
}

// Neighbors returns the heavy neighbors of atom i.
func (m *Molecule) Neighbors(i int) []Neighbor {
	out := make([]Neighbor, 0, len(m.adj[i]))
	for _, b := range m.adj[i] {
		j := m.Bonds[b].Other(i)
		if m.isFoldedHydrogen(j) {
			continue
		}
		out = append(out, Neighbor{Atom: j, Bond: b})
	}
	return out
}

// Degree returns the number of heavy neighbors of atom i.
func (m *Molecule) Degree(i int) int {
	return len(m.Neighbors(i))
}

// HydrogenCount returns the total hydrogen count of atom i: implicit,
// bracket and folded explicit hydrogens.
func (m *Molecule) HydrogenCount(i int) int {
	return m.hydrogens[i]
}

// InRing reports whether bond b belongs to a ring.
func (m *Molecule) InRing(b int) bool {
	return m.ringBond[b]
}

// isFoldedHydrogen reports whether atom i is a plain hydrogen atom.
// Isotopic or charged hydrogens stay in the graph.
func (m *Molecule) isFoldedHydrogen(i int) bool {
	a := m.Atoms[i]
	return a.Element == "H" && a.Isotope == 0 && a.Charge == 0 && len(m.adj[i]) == 1
}

// finish builds adjacency, hydrogen counts and ring membership.
func (m *Molecule) finish() error {
	m.adj = make([][]int, len(m.Atoms))
	for bi, b := range m.Bonds {
		m.adj[b.Begin] = append(m.adj[b.Begin], bi)
		m.adj[b.End] = append(m.adj[b.End], bi)
	}

	m.hydrogens = make([]int, len(m.Atoms))
	for i, a := range m.Atoms {
		if a.Bracket {
			m.hydrogens[i] = a.BracketH
		} else {
			h, err := m.implicitHydrogens(i)
			if err != nil {
				return err
			}
			m.hydrogens[i] = h
		}
	}
	for i := range m.Atoms {
		if m.isFoldedHydrogen(i) {
			m.hydrogens[m.Bonds[m.adj[i][0]].Other(i)]++
		}
	}

	m.ringBond = findRingBonds(len(m.Atoms), m.Bonds, m.adj)
	return m.checkAromatic()
}

// implicitHydrogens computes the implicit hydrogen count of an
// organic-subset atom from its lowest valence that fits its bonds.
// Aromatic atoms only use their lowest valence, so thiophene's s has none.
func (m *Molecule) implicitHydrogens(i int) (int, error) {
	a := m.Atoms[i]
	valences, ok := organicValences[a.Element]
	if !ok {
		return 0, nil // wildcard
	}

	used := 0
	for _, b := range m.adj[i] {
		switch o := m.Bonds[b].Order; o {
		case BondAromatic:
			used++
		default:
			used += int(o)
		}
	}
	if a.Aromatic {
		return max(valences[0]-used-1, 0), nil
	}

	for _, v := range valences {
		if v >= used {
			return v - used, nil
		}
	}
	return 0, &ValenceError{Atom: i, Element: a.Element, Valence: used, Allowed: valences}
}

// findRingBonds marks every bond that is not a bridge of the graph.
func findRingBonds(n int, bonds []Bond, adj [][]int) []bool {
	ring := make([]bool, len(bonds))
	for i := range ring {
		ring[i] = true
	}
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	timer := 0

	var visit func(u, parentBond int)
	visit = func(u, parentBond int) {
		disc[u] = timer
		low[u] = timer
		timer++
		for _, b := range adj[u] {
			if b == parentBond {
				continue
			}
			v := bonds[b].Other(u)
			if disc[v] == -1 {
				visit(v, b)
				low[u] = min(low[u], low[v])
				if low[v] > disc[u] {
					ring[b] = false
				}
			} else {
				low[u] = min(low[u], disc[v])
			}
		}
	}

	for u := range n {
		if disc[u] == -1 {
			visit(u, -1)
		}
	}
	return ring
}
