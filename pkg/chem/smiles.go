package chem

import (
	"strconv"
	"strings"
)

type ringOpening struct {
	atom  int
	order BondOrder
	set   bool
	pos   int
}

type smilesParser struct {
	src  string
	pos  int
	mol  *Molecule
	prev int

	pendingOrder  BondOrder
	pendingStereo byte
	pendingSet    bool

	branches []int
	rings    map[int]ringOpening
}

// ParseSMILES reads a SMILES string into a Molecule.
// Surrounding whitespace is ignored; anything after the first inner
// whitespace (a SMILES title) is dropped.
func ParseSMILES(s string) (*Molecule, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return nil, &SyntaxError{SMILES: s, Msg: "empty SMILES"}
	}

	p := &smilesParser{
		src:   s,
		mol:   &Molecule{},
		prev:  -1,
		rings: make(map[int]ringOpening),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	if err := p.mol.finish(); err != nil {
		return nil, err
	}
	return p.mol, nil
}

func (p *smilesParser) errorf(msg string) error {
	return &SyntaxError{SMILES: p.src, Pos: p.pos, Msg: msg}
}

func (p *smilesParser) parse() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.errorf("branch without preceding atom")
			}
			if p.pendingSet {
				return p.errorf("bond before branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.errorf("unbalanced ')'")
			}
			if p.pendingSet {
				return p.errorf("bond at end of branch")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case c == '.':
			if p.pendingSet {
				return p.errorf("bond before '.'")
			}
			if len(p.branches) > 0 {
				return p.errorf("'.' inside branch")
			}
			p.prev = -1
			p.pos++
		case strings.IndexByte("-=#$:/\\", c) >= 0:
			if p.pendingSet {
				return p.errorf("consecutive bond symbols")
			}
			p.setPendingBond(c)
			p.pos++
		case c >= '0' && c <= '9' || c == '%':
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			atom, err := p.bracketAtom()
			if err != nil {
				return err
			}
			if err := p.addAtom(atom); err != nil {
				return err
			}
		default:
			atom, err := p.organicAtom()
			if err != nil {
				return err
			}
			if err := p.addAtom(atom); err != nil {
				return err
			}
		}
	}

	if p.pendingSet {
		return p.errorf("dangling bond at end of input")
	}
	if len(p.branches) > 0 {
		return p.errorf("unclosed branch")
	}
	for num, r := range p.rings {
		p.pos = r.pos
		return p.errorf("unclosed ring " + strconv.Itoa(num))
	}
	return nil
}

func (p *smilesParser) setPendingBond(c byte) {
	p.pendingSet = true
	p.pendingStereo = 0
	switch c {
	case '-':
		p.pendingOrder = BondSingle
	case '=':
		p.pendingOrder = BondDouble
	case '#':
		p.pendingOrder = BondTriple
	case '$':
		p.pendingOrder = BondQuadruple
	case ':':
		p.pendingOrder = BondAromatic
	case '/', '\\':
		p.pendingOrder = BondSingle
		p.pendingStereo = c
	}
}

func (p *smilesParser) clearPending() {
	p.pendingSet = false
	p.pendingOrder = 0
	p.pendingStereo = 0
}

func (p *smilesParser) defaultOrder(a, b int) BondOrder {
	if p.mol.Atoms[a].Aromatic && p.mol.Atoms[b].Aromatic {
		return BondAromatic
	}
	return BondSingle
}

func (p *smilesParser) addAtom(a Atom) error {
	p.mol.Atoms = append(p.mol.Atoms, a)
	idx := len(p.mol.Atoms) - 1
	if p.prev >= 0 {
		order := p.pendingOrder
		if !p.pendingSet {
			order = p.defaultOrder(p.prev, idx)
		}
		if err := p.addBond(p.prev, idx, order, p.pendingStereo); err != nil {
			return err
		}
	} else if p.pendingSet {
		return p.errorf("bond without preceding atom")
	}
	p.clearPending()
	p.prev = idx
	return nil
}

func (p *smilesParser) addBond(a, b int, order BondOrder, stereo byte) error {
	if a == b {
		return p.errorf("atom bonded to itself")
	}
	for _, existing := range p.mol.Bonds {
		if (existing.Begin == a && existing.End == b) || (existing.Begin == b && existing.End == a) {
			return p.errorf("duplicate bond between atoms " + strconv.Itoa(a) + " and " + strconv.Itoa(b))
		}
	}
	p.mol.Bonds = append(p.mol.Bonds, Bond{Begin: a, End: b, Order: order, Stereo: stereo})
	return nil
}

func (p *smilesParser) ringClosure() error {
	start := p.pos
	if p.prev < 0 {
		return p.errorf("ring closure without preceding atom")
	}

	var num int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
			return p.errorf("'%' must be followed by two digits")
		}
		num = int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
		p.pos += 3
	} else {
		num = int(p.src[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[num]
	if !ok {
		p.rings[num] = ringOpening{atom: p.prev, order: p.pendingOrder, set: p.pendingSet, pos: start}
		p.clearPending()
		return nil
	}

	delete(p.rings, num)
	var order BondOrder
	switch {
	case p.pendingSet && open.set && p.pendingOrder != open.order:
		return p.errorf("conflicting bond orders for ring closure " + strconv.Itoa(num))
	case p.pendingSet:
		order = p.pendingOrder
	case open.set:
		order = open.order
	default:
		order = p.defaultOrder(open.atom, p.prev)
	}
	stereo := p.pendingStereo
	p.clearPending()
	return p.addBond(open.atom, p.prev, order, stereo)
}

func (p *smilesParser) organicAtom() (Atom, error) {
	rest := p.src[p.pos:]
	for _, sym := range []string{"Cl", "Br"} {
		if strings.HasPrefix(rest, sym) {
			p.pos += 2
			return Atom{Element: sym}, nil
		}
	}
	c := rest[0]
	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		p.pos++
		return Atom{Element: string(c)}, nil
	case 'b', 'c', 'n', 'o', 'p', 's':
		p.pos++
		return Atom{Element: aromaticSymbols[string(c)], Aromatic: true}, nil
	case '*':
		p.pos++
		return Atom{Element: "*"}, nil
	}
	return Atom{}, p.errorf("unexpected character " + quote(c))
}

func (p *smilesParser) bracketAtom() (Atom, error) {
	open := p.pos
	p.pos++ // '['
	atom := Atom{Bracket: true}

	// isotope
	atom.Isotope = p.readNumber()

	// symbol
	if err := p.bracketSymbol(&atom); err != nil {
		return Atom{}, err
	}

	// chirality
	if p.peek() == '@' {
		start := p.pos
		p.pos++
		if p.peek() == '@' {
			p.pos++
		} else if p.pos+1 < len(p.src) {
			switch p.src[p.pos : p.pos+2] {
			case "TH", "AL", "SP", "TB", "OH":
				p.pos += 2
				if p.readNumber() == 0 {
					return Atom{}, p.errorf("chirality class requires a number")
				}
			}
		}
		atom.Chirality = p.src[start:p.pos]
	}

	// hydrogen count
	if p.peek() == 'H' {
		p.pos++
		atom.BracketH = 1
		if isDigit(p.peek()) {
			atom.BracketH = p.readNumber()
		}
	}

	// charge
	if c := p.peek(); c == '+' || c == '-' {
		sign := 1
		if c == '-' {
			sign = -1
		}
		p.pos++
		switch {
		case isDigit(p.peek()):
			atom.Charge = sign * p.readNumber()
		case p.peek() == c:
			n := 1
			for p.peek() == c {
				n++
				p.pos++
			}
			atom.Charge = sign * n
		default:
			atom.Charge = sign
		}
	}

	// atom class
	if p.peek() == ':' {
		p.pos++
		if !isDigit(p.peek()) {
			return Atom{}, p.errorf("atom class requires a number")
		}
		atom.Class = p.readNumber()
	}

	if p.peek() != ']' {
		if p.pos >= len(p.src) {
			p.pos = open
			return Atom{}, p.errorf("unclosed bracket atom")
		}
		return Atom{}, p.errorf("unexpected character " + quote(p.src[p.pos]) + " in bracket atom")
	}
	p.pos++
	return atom, nil
}

func (p *smilesParser) bracketSymbol(atom *Atom) error {
	rest := p.src[p.pos:]
	if rest == "" {
		return p.errorf("unclosed bracket atom")
	}
	if rest[0] == '*' {
		atom.Element = "*"
		p.pos++
		return nil
	}
	// aromatic two-letter symbols first, then one-letter
	for _, n := range []int{2, 1} {
		if len(rest) >= n {
			if el, ok := aromaticSymbols[rest[:n]]; ok {
				atom.Element = el
				atom.Aromatic = true
				p.pos += n
				return nil
			}
		}
	}
	for _, n := range []int{2, 1} {
		if len(rest) >= n {
			if _, ok := elements[rest[:n]]; ok && isUpper(rest[0]) {
				atom.Element = rest[:n]
				p.pos += n
				return nil
			}
		}
	}
	return p.errorf("unknown element in bracket atom")
}

func (p *smilesParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *smilesParser) readNumber() int {
	n := 0
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		n = n*10 + int(p.src[p.pos]-'0')
		p.pos++
	}
	return n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func quote(c byte) string { return "'" + string(c) + "'" }
