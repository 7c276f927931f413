package chem

// NumRotatableBonds counts the rotatable bonds of m using the strict
// definition: a single or aromatic bond outside any ring, between two
// non-terminal atoms that carry no triple bond and are not trihalomethyl
// or tert-butyl carbons. Amide, ester, thioamide and amidine C-X bonds
// are not counted.
func NumRotatableBonds(m *Molecule) int {
	n := 0
	for bi, b := range m.Bonds {
		if b.Order != BondSingle && b.Order != BondAromatic {
			continue
		}
		if m.InRing(bi) || m.isFoldedHydrogen(b.Begin) || m.isFoldedHydrogen(b.End) {
			continue
		}
		if m.rotatableEnd(b.Begin) && m.rotatableBase(b.End) ||
			m.rotatableEnd(b.End) && m.rotatableBase(b.Begin) {
			n++
		}
	}
	return n
}

// rotatableBase holds for atoms that can anchor a rotatable bond.
func (m *Molecule) rotatableBase(i int) bool {
	if m.Degree(i) <= 1 || m.hasBondOrder(i, BondTriple) {
		return false
	}
	if !m.isAliphatic(i, "C") {
		return true
	}
	var f, cl, br, methyl int
	for _, nb := range m.Neighbors(i) {
		switch {
		case m.isAliphatic(nb.Atom, "F"):
			f++
		case m.isAliphatic(nb.Atom, "Cl"):
			cl++
		case m.isAliphatic(nb.Atom, "Br"):
			br++
		case m.isAliphatic(nb.Atom, "C") && m.HydrogenCount(nb.Atom) == 3:
			methyl++
		}
	}
	return f < 3 && cl < 3 && br < 3 && methyl < 3
}

// rotatableEnd adds the amide-like exclusions to rotatableBase.
func (m *Molecule) rotatableEnd(i int) bool {
	if !m.rotatableBase(i) {
		return false
	}
	return !m.isAmideCarbon(i, m.isChalcogenOrNitrogen, m.isNeutralHeteroAcceptor) &&
		!m.isAmideCarbon(i, m.isNonTerminalNitrogen, m.isCationicNitrogen) &&
		!m.isAmideHetero(i, m.isChalcogenOrNitrogen, m.isNeutralHeteroAcceptor) &&
		!m.isAmideHetero(i, m.isNonTerminalNitrogen, m.isCationicNitrogen)
}

// isAmideCarbon reports whether i is an aliphatic carbon with three heavy
// neighbors, one double-bonded acceptor and one chain-bonded donor.
func (m *Molecule) isAmideCarbon(i int, donor, acceptor func(int) bool) bool {
	if !m.isAliphatic(i, "C") || m.Degree(i) != 3 {
		return false
	}
	var hasAcceptor, hasDonor bool
	for _, nb := range m.Neighbors(i) {
		b := m.Bonds[nb.Bond]
		switch {
		case b.Order == BondDouble && acceptor(nb.Atom):
			hasAcceptor = true
		case b.Order == BondSingle && !m.InRing(nb.Bond) && donor(nb.Atom):
			hasDonor = true
		}
	}
	return hasAcceptor && hasDonor
}

// isAmideHetero reports whether i is the donor side of an amide-like group.
func (m *Molecule) isAmideHetero(i int, donor, acceptor func(int) bool) bool {
	if !donor(i) {
		return false
	}
	for _, nb := range m.Neighbors(i) {
		b := m.Bonds[nb.Bond]
		if b.Order != BondSingle || m.InRing(nb.Bond) {
			continue
		}
		c := nb.Atom
		if !m.isAliphatic(c, "C") || m.Degree(c) != 3 {
			continue
		}
		for _, cn := range m.Neighbors(c) {
			if m.Bonds[cn.Bond].Order == BondDouble && acceptor(cn.Atom) {
				return true
			}
		}
	}
	return false
}

// isChalcogenOrNitrogen matches any nitrogen, aliphatic oxygen or a
// non-terminal aliphatic sulfur.
func (m *Molecule) isChalcogenOrNitrogen(i int) bool {
	a := m.Atoms[i]
	switch {
	case a.Element == "N":
		return true
	case m.isAliphatic(i, "O"):
		return true
	case m.isAliphatic(i, "S"):
		return m.Degree(i) != 1
	}
	return false
}

func (m *Molecule) isNeutralHeteroAcceptor(i int) bool {
	return m.isAliphatic(i, "N") || m.isAliphatic(i, "O") || m.isAliphatic(i, "S")
}

func (m *Molecule) isNonTerminalNitrogen(i int) bool {
	return m.Atoms[i].Element == "N" && m.Degree(i) != 1
}

func (m *Molecule) isCationicNitrogen(i int) bool {
	return m.isAliphatic(i, "N") && m.Atoms[i].Charge == 1
}

func (m *Molecule) isAliphatic(i int, element string) bool {
	a := m.Atoms[i]
	return a.Element == element && !a.Aromatic
}

func (m *Molecule) hasBondOrder(i int, order BondOrder) bool {
	for _, b := range m.adj[i] {
		if m.Bonds[b].Order == order {
			return true
		}
	}
	return false
}
