package chem

// aromaticValences extends organicValences with the elements that are only
// aromatic inside brackets.
var aromaticValences = map[string][]int{
	"Se": {2, 4, 6},
	"Te": {2, 4, 6},
	"As": {3, 5},
}

// checkAromatic verifies that every aromatic atom sits in a ring and that
// the aromatic bonds admit a Kekulé structure: each atom needing a double
// bond gets exactly one from an aromatic neighbor.
func (m *Molecule) checkAromatic() error {
	const (
		skip = iota
		required
		optional
	)
	role := make([]int, len(m.Atoms))
	var needs []int
	for i, a := range m.Atoms {
		if !a.Aromatic {
			continue
		}
		inRing := false
		for _, b := range m.adj[i] {
			inRing = inRing || m.ringBond[b]
		}
		if !inRing {
			return &KekuleError{Atoms: []int{i}, Reason: "non-ring atom marked aromatic"}
		}
		need, known := m.needsDoubleBond(i)
		switch {
		case !known:
			role[i] = optional
		case need:
			role[i] = required
			needs = append(needs, i)
		}
	}
	if len(needs) == 0 {
		return nil
	}

	partners := make([][]int, len(m.Atoms))
	for _, i := range needs {
		for _, b := range m.adj[i] {
			if m.Bonds[b].Order != BondAromatic {
				continue
			}
			if j := m.Bonds[b].Other(i); role[j] != skip {
				partners[i] = append(partners[i], j)
			}
		}
	}

	matched := make([]bool, len(m.Atoms))
	var solve func() bool
	solve = func() bool {
		// Branch on the unmatched atom with the fewest free partners.
		best, fewest := -1, 0
		for _, i := range needs {
			if matched[i] {
				continue
			}
			free := 0
			for _, j := range partners[i] {
				if !matched[j] {
					free++
				}
			}
			if free == 0 {
				return false
			}
			if best < 0 || free < fewest {
				best, fewest = i, free
			}
		}
		if best < 0 {
			return true
		}
		matched[best] = true
		for _, j := range partners[best] {
			if matched[j] {
				continue
			}
			matched[j] = true
			if solve() {
				return true
			}
			matched[j] = false
		}
		matched[best] = false
		return false
	}
	if !solve() {
		return &KekuleError{Atoms: needs, Reason: "aromatic bonds admit no alternating double bonds"}
	}
	return nil
}

// needsDoubleBond reports whether aromatic atom i has one free valence left
// for a ring double bond. known is false for elements without a valence
// model, such as the wildcard, which may take a double bond or not.
func (m *Molecule) needsDoubleBond(i int) (need, known bool) {
	a := m.Atoms[i]
	valences, ok := organicValences[a.Element]
	if !ok {
		valences, ok = aromaticValences[a.Element]
	}
	if !ok {
		return false, false
	}

	used := m.hydrogens[i]
	for _, b := range m.adj[i] {
		if m.isFoldedHydrogen(m.Bonds[b].Other(i)) {
			continue
		}
		if o := m.Bonds[b].Order; o == BondAromatic {
			used++
		} else {
			used += int(o)
		}
	}

	shift := a.Charge
	switch a.Element {
	case "C":
		shift = -max(a.Charge, -a.Charge)
	case "B":
		shift = -a.Charge
	}
	for _, v := range valences {
		if v+shift >= used {
			return v+shift-used >= 1, true
		}
	}
	return false, true
}
