package proformamass

import "strings"

// BaseSugar enumerates the monosaccharide backbones this module
// recognises, seeded from the teacher's resources.go Monosaccharides
// set and GlycanBlockDict.
type BaseSugar string

const (
	Hexose        BaseSugar = "Hex"
	HexNAcSugar   BaseSugar = "HexNAc"
	Deoxyhexose   BaseSugar = "dHex"
	Fucose        BaseSugar = "Fuc"
	NeuraminicAc  BaseSugar = "NeuAc"
	NeuraminicGc  BaseSugar = "NeuGc"
	Pentose       BaseSugar = "Pent"
)

// GlycanSubstituent is a chemical modification attached to a
// MonoSaccharide (e.g. sulfation, acetylation), carrying its own
// formula contribution.
type GlycanSubstituent string

// substituentFormulas gives the net formula contribution of each
// recognised substituent code, per spec.md §4.2 ("substituents have
// fixed formula contributions from a static table").
var substituentFormulas = map[GlycanSubstituent]MolecularFormula{
	"S":   formulaOf(map[Element]int32{S: 1, O: 3}),  // sulfate, -H replaced by -SO3H net +SO3
	"P":   formulaOf(map[Element]int32{P: 1, O: 3}),  // phosphate
	"Ac":  formulaOf(map[Element]int32{C: 2, H: 2, O: 1}), // acetyl, net C2H2O
	"NAc": formulaOf(map[Element]int32{C: 2, H: 3, N: 1, O: 1}),
	"Me":  formulaOf(map[Element]int32{C: 1, H: 2}),
}

func formulaOf(counts map[Element]int32) MolecularFormula {
	f := NewMolecularFormula(0)
	for el, n := range counts {
		f.AddEntry(el, nil, n)
	}
	return f
}

// baseSugarFormulas gives each base sugar's own formula contribution
// (residue form, i.e. already condensed into a glycosidic chain), per
// spec.md §4.2's "Formula" rule ("sum of base-sugar formula + each
// substituent's contribution").
var baseSugarFormulas = map[BaseSugar]MolecularFormula{
	Hexose:       formulaOf(map[Element]int32{C: 6, H: 10, O: 5}),
	HexNAcSugar:  formulaOf(map[Element]int32{C: 8, H: 13, N: 1, O: 5}),
	Deoxyhexose:  formulaOf(map[Element]int32{C: 6, H: 10, O: 4}),
	Fucose:       formulaOf(map[Element]int32{C: 6, H: 10, O: 4}),
	NeuraminicAc: formulaOf(map[Element]int32{C: 11, H: 17, N: 1, O: 8}),
	NeuraminicGc: formulaOf(map[Element]int32{C: 11, H: 17, N: 1, O: 9}),
	Pentose:      formulaOf(map[Element]int32{C: 5, H: 8, O: 4}),
}

// MonoSaccharide is (BaseSugar, substituent list, furanose?,
// proforma_name?); equality is by (base, multiset of substituents) per
// spec.md §3.
type MonoSaccharide struct {
	Base          BaseSugar
	Substituents  []GlycanSubstituent
	Furanose      bool
	ProFormaName  *string
}

// Formula sums the base sugar's formula with every substituent's
// contribution.
func (ms MonoSaccharide) Formula() MolecularFormula {
	f := baseSugarFormulas[ms.Base].Clone()
	for _, sub := range ms.Substituents {
		if contrib, ok := substituentFormulas[sub]; ok {
			f = f.Add(contrib)
		}
	}
	return f
}

// Equal compares by (base, multiset of substituents), ignoring
// substituent order and furanose/proforma_name cosmetic fields.
func (ms MonoSaccharide) Equal(other MonoSaccharide) bool {
	if ms.Base != other.Base {
		return false
	}
	if len(ms.Substituents) != len(other.Substituents) {
		return false
	}
	counts := map[GlycanSubstituent]int{}
	for _, s := range ms.Substituents {
		counts[s]++
	}
	for _, s := range other.Substituents {
		counts[s]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// GlycanStructure is the rooted tree of sugars described in spec.md §3
// ("Rose tree: sugar + ordered branch list").
type GlycanStructure struct {
	Sugar    MonoSaccharide
	Branches []GlycanStructure
}

// Formula recursively sums the sugar's own formula plus every branch's
// formula; the residue-form sugar formulas already exclude the water
// lost per glycosidic bond.
func (g GlycanStructure) Formula() MolecularFormula {
	f := g.Sugar.Formula()
	for _, branch := range g.Branches {
		f = f.Add(branch.Formula())
	}
	return f
}

// Walk calls fn for the root sugar and every descendant, depth-first.
func (g GlycanStructure) Walk(fn func(GlycanStructure)) {
	fn(g)
	for _, branch := range g.Branches {
		branch.Walk(fn)
	}
}

// monosaccharideNames lists the recognised short-IUPAC tokens;
// matchLongestSugar tries every entry and keeps the longest one that
// matches at the current position, so the list order does not matter
// (spec.md §4.2: "match the longest monosaccharide name from a static
// table").
var monosaccharideNames = []BaseSugar{HexNAcSugar, NeuraminicAc, NeuraminicGc, Deoxyhexose, Hexose, Fucose, Pentose}

// ParseGlycan parses a short-IUPAC glycan string into a GlycanStructure
// using the greedy tokenizer spec.md §4.2 describes: at each position,
// consume optional [branch] blocks recursively, match the longest sugar
// name, then optional substituent codes, then skip a linkage descriptor
// in parentheses. The outermost (last-parsed) branch becomes the tree
// root, matching the teacher's convention of building up a sequence
// left-to-right and then re-rooting.
func ParseGlycan(s string) (GlycanStructure, error) {
	p := &glycanParser{runes: []rune(s)}
	root, err := p.parseNode()
	if err != nil {
		return GlycanStructure{}, err
	}
	if p.pos != len(p.runes) {
		return GlycanStructure{}, newSemanticError("trailing glycan text", "unparsed characters remain after the outermost sugar", singleLineContext(s, p.pos), nil)
	}
	return root, nil
}

type glycanParser struct {
	runes []rune
	pos   int
}

func (p *glycanParser) parseNode() (GlycanStructure, error) {
	var branches []GlycanStructure
	for p.pos < len(p.runes) && p.runes[p.pos] == '[' {
		depth := 1
		start := p.pos + 1
		j := start
		for j < len(p.runes) && depth > 0 {
			switch p.runes[j] {
			case '[':
				depth++
			case ']':
				depth--
			}
			j++
		}
		if depth != 0 {
			return GlycanStructure{}, newSemanticError("unclosed glycan branch bracket", "", singleLineContext(string(p.runes), p.pos), nil)
		}
		inner := &glycanParser{runes: p.runes[start : j-1]}
		branch, err := inner.parseNode()
		if err != nil {
			return GlycanStructure{}, err
		}
		branches = append(branches, branch)
		p.pos = j
	}

	base, ok := p.matchLongestSugar()
	if !ok {
		return GlycanStructure{}, newSemanticError("unrecognised monosaccharide", "no known monosaccharide name matched at this position", singleLineContext(string(p.runes), p.pos), nil)
	}

	var substituents []GlycanSubstituent
	for {
		sub, matched := p.matchSubstituent()
		if !matched {
			break
		}
		substituents = append(substituents, sub)
	}

	if p.pos < len(p.runes) && p.runes[p.pos] == '(' {
		end := strings_IndexRune(p.runes[p.pos:], ')')
		if end == -1 {
			return GlycanStructure{}, newSemanticError("unclosed linkage descriptor", "", singleLineContext(string(p.runes), p.pos), nil)
		}
		p.pos += end + 1
	}

	node := GlycanStructure{Sugar: MonoSaccharide{Base: base, Substituents: substituents}, Branches: branches}

	if p.pos < len(p.runes) {
		next, err := p.parseNode()
		if err != nil {
			return GlycanStructure{}, err
		}
		next.Branches = append(next.Branches, node)
		return next, nil
	}
	return node, nil
}

func (p *glycanParser) matchLongestSugar() (BaseSugar, bool) {
	remaining := string(p.runes[p.pos:])
	var best BaseSugar
	bestLen := 0
	for _, name := range monosaccharideNames {
		if strings.HasPrefix(remaining, string(name)) && len(name) > bestLen {
			best = name
			bestLen = len(name)
		}
	}
	if bestLen == 0 {
		return "", false
	}
	p.pos += bestLen
	return best, true
}

// isPositionRune reports whether r can appear in a leading position
// descriptor such as the "6" in "6S" or the "2,3" in "2,3Ac2".
func isPositionRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == ','
}

func (p *glycanParser) matchSubstituent() (GlycanSubstituent, bool) {
	start := p.pos
	scan := p.pos
	for scan < len(p.runes) && isPositionRune(p.runes[scan]) {
		scan++
	}

	remaining := string(p.runes[scan:])
	var best GlycanSubstituent
	bestLen := 0
	for sub := range substituentFormulas {
		name := string(sub)
		if strings.HasPrefix(remaining, name) && len(name) > bestLen {
			best = sub
			bestLen = len(name)
		}
	}
	if bestLen == 0 {
		p.pos = start
		return "", false
	}
	p.pos = scan + bestLen
	// Optional digit count suffix, e.g. "2,3Ac2" -> consume trailing digits.
	for p.pos < len(p.runes) && p.runes[p.pos] >= '0' && p.runes[p.pos] <= '9' {
		p.pos++
	}
	return best, true
}

func strings_IndexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}

// DiagnosticIon is one oxonium/neutral-loss variant the fragment
// generator emits for a glycan subtree, per spec.md §4.2's diagnostic
// ion table.
type DiagnosticIon struct {
	Name    string
	Formula MolecularFormula
}

// oxoniumProton is the +H that makes a glycan B-ion a detectable
// cation; subtracted water/acetone losses below model common
// glycan oxonium neutral losses (e.g. HexNAc -> -H2O, -2H2O, -C2H6O3).
var oxoniumProton = formulaOf(map[Element]int32{H: 1, Electron: -1})

// DiagnosticIons returns the base oxonium ion for a monosaccharide plus
// its common neutral-loss variants, keyed by (base, substituent
// multiset) as spec.md §4.2 describes.
func DiagnosticIons(ms MonoSaccharide) []DiagnosticIon {
	base := ms.Formula().Add(oxoniumProton)
	water := formulaOf(map[Element]int32{H: 2, O: 1})
	ions := []DiagnosticIon{{Name: string(ms.Base), Formula: base}}
	switch ms.Base {
	case Hexose:
		ions = append(ions,
			DiagnosticIon{Name: string(ms.Base) + "-H2O", Formula: base.Sub(water)},
			DiagnosticIon{Name: string(ms.Base) + "-2H2O", Formula: base.Sub(water.Mul(2))},
			DiagnosticIon{Name: string(ms.Base) + "-CH6O3", Formula: base.Sub(formulaOf(map[Element]int32{C: 1, H: 6, O: 3}))},
			DiagnosticIon{Name: string(ms.Base) + "-C2H6O3", Formula: base.Sub(formulaOf(map[Element]int32{C: 2, H: 6, O: 3}))},
		)
	case HexNAcSugar:
		ions = append(ions,
			DiagnosticIon{Name: string(ms.Base) + "-H2O", Formula: base.Sub(water)},
			DiagnosticIon{Name: string(ms.Base) + "-2H2O", Formula: base.Sub(water.Mul(2))},
			DiagnosticIon{Name: string(ms.Base) + "-C2H6O3", Formula: base.Sub(formulaOf(map[Element]int32{C: 2, H: 6, O: 3}))},
		)
	case NeuraminicAc:
		ions = append(ions, DiagnosticIon{Name: string(ms.Base) + "-H2O", Formula: base.Sub(water)})
	}
	return ions
}
