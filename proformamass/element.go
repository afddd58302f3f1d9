package proformamass

// Element identifies a chemical element by atomic number, or the
// pseudo-element Electron (atomic number 0) used to represent charge
// within a MolecularFormula.
type Element int

// Named constants for the elements that amino acids, the common
// Unimod/PSI-MOD modifications, and glycans actually reference in this
// module's fragment/mass arithmetic. Elements without a name here are
// still present in elementTable and are addressed by atomic number
// (e.g. Element(34) for Selenium) when an ontology blob or a ProForma
// `Formula:` string names them.
const (
	Electron Element = iota
	H
	He
	Li
	Be
	B
	C
	N
	O
	F
	Ne
	Na
	Mg
	Al
	Si
	P
	S
	Cl
	Ar
	K
	Ca
)

// elementCount matches spec.md §6's "static array of length 118
// (Electron + element number)".
const elementCount = 118

// IsotopeEntry records one measured isotope of an element: its nucleon
// count, monoisotopic mass, and natural abundance fraction (0 for
// isotopes with no natural abundance, e.g. tracer isotopes used only in
// global isotope substitutions).
type IsotopeEntry struct {
	Nucleons  int
	Mass      float64
	Abundance float64
}

// ElementEntry is one row of the static element table: the element's
// natural-abundance monoisotopic mass, its average (standard atomic)
// weight, and the isotope distribution MostAbundantMass scans.
type ElementEntry struct {
	Symbol           string
	MonoisotopicMass *float64
	AverageWeight    *float64
	Isotopes         []IsotopeEntry
}

func massPtr(v float64) *float64 { return &v }

// elementTable is the static, process-lifetime element/isotope lookup
// described in spec.md §4.1/§6. It is built once in init() from
// detailedElements (full isotope envelopes for the handful of elements
// this module's chemistry actually exercises in detail) layered over
// genericElements (standard atomic weights for 39 further elements,
// used as both their monoisotopic and average mass). Slots named in
// neither list have no symbol and resolve no mass.
var elementTable [elementCount]ElementEntry

type detailedElement struct {
	element  Element
	symbol   string
	isotopes []IsotopeEntry
}

// Isotope masses below are NIST/CODATA values; init() derives each
// element's average weight as the abundance-weighted mean of the
// isotopes listed, normalized by their summed abundance. This mirrors the scope
// original_source/src/element.rs's generated table covers for the
// elements that occur in peptide, modification, and glycan chemistry.
var detailedElements = []detailedElement{
	{Electron, "e", nil},
	{H, "H", []IsotopeEntry{{1, 1.0078250319, 0.999885}, {2, 2.0141017780, 0.000115}}},
	{C, "C", []IsotopeEntry{{12, 12.0000000000, 0.9893}, {13, 13.0033548378, 0.0107}}},
	{N, "N", []IsotopeEntry{{14, 14.0030740052, 0.99636}, {15, 15.0001088984, 0.00364}}},
	{O, "O", []IsotopeEntry{{16, 15.9949146221, 0.99757}, {17, 16.9991317565, 0.00038}, {18, 17.9991596129, 0.00205}}},
	{S, "S", []IsotopeEntry{{32, 31.97207069, 0.9499}, {33, 32.97145850, 0.0075}, {34, 33.96786683, 0.0425}, {36, 35.96708088, 0.0001}}},
	{P, "P", []IsotopeEntry{{31, 30.97376151, 1.0}}},
	{Na, "Na", []IsotopeEntry{{23, 22.98976928, 1.0}}},
	{Cl, "Cl", []IsotopeEntry{{35, 34.96885268, 0.7576}, {37, 36.96590259, 0.2424}}},
	{K, "K", []IsotopeEntry{{39, 38.96370649, 0.932581}, {40, 39.96399817, 0.000117}, {41, 40.96182526, 0.067302}}},
	{Ca, "Ca", []IsotopeEntry{{40, 39.96259086, 0.96941}, {44, 43.95548156, 0.02086}}},
	{Element(12), "Mg", []IsotopeEntry{{24, 23.98504170, 0.7899}, {25, 24.98583698, 0.1000}, {26, 25.98259297, 0.1101}}},
	{Element(26), "Fe", []IsotopeEntry{{54, 53.93960899, 0.05845}, {56, 55.93493633, 0.91754}, {57, 56.93539284, 0.02119}, {58, 57.93327443, 0.00282}}},
	{Element(30), "Zn", []IsotopeEntry{{64, 63.92914201, 0.4917}, {66, 65.92603381, 0.2773}, {68, 67.92484455, 0.1845}}},
	{Element(29), "Cu", []IsotopeEntry{{63, 62.92959772, 0.6915}, {65, 64.92778970, 0.3085}}},
	{Element(34), "Se", []IsotopeEntry{{74, 73.92247593, 0.0089}, {76, 75.91921370, 0.0937}, {78, 77.91730910, 0.2377}, {80, 79.91652180, 0.4961}}},
	{Element(35), "Br", []IsotopeEntry{{79, 78.9183376, 0.5069}, {81, 80.9162906, 0.4931}}},
	{Element(53), "I", []IsotopeEntry{{127, 126.9044719, 1.0}}},
}

// genericElements supplies 39 further table slots (IUPAC standard
// atomic weights, which init() stores as both the monoisotopic and the
// average mass) for elements this module never builds isotope
// envelopes for but that Unimod/PSI-MOD/RESID entries may still name in
// a `Formula:` string.
var genericElements = []struct {
	element Element
	symbol  string
	average float64
}{
	{He, "He", 4.002602}, {Li, "Li", 6.94}, {Be, "Be", 9.0121831},
	{B, "B", 10.81}, {F, "F", 18.998403163}, {Ne, "Ne", 20.1797},
	{Al, "Al", 26.9815385}, {Si, "Si", 28.085}, {Ar, "Ar", 39.948},
	{Element(21), "Sc", 44.955908}, {Element(22), "Ti", 47.867},
	{Element(23), "V", 50.9415}, {Element(24), "Cr", 51.9961},
	{Element(25), "Mn", 54.938044}, {Element(27), "Co", 58.933194},
	{Element(28), "Ni", 58.6934}, {Element(31), "Ga", 69.723},
	{Element(32), "Ge", 72.630}, {Element(33), "As", 74.921595},
	{Element(36), "Kr", 83.798}, {Element(37), "Rb", 85.4678},
	{Element(38), "Sr", 87.62}, {Element(39), "Y", 88.90584},
	{Element(40), "Zr", 91.224}, {Element(42), "Mo", 95.95},
	{Element(46), "Pd", 106.42}, {Element(47), "Ag", 107.8682},
	{Element(48), "Cd", 112.414}, {Element(50), "Sn", 118.710},
	{Element(51), "Sb", 121.760}, {Element(52), "Te", 127.60},
	{Element(55), "Cs", 132.90545196}, {Element(56), "Ba", 137.327},
	{Element(74), "W", 183.84}, {Element(78), "Pt", 195.084},
	{Element(79), "Au", 196.966569}, {Element(80), "Hg", 200.592},
	{Element(82), "Pb", 207.2}, {Element(92), "U", 238.02891},
}

func init() {
	for i := range elementTable {
		elementTable[i] = ElementEntry{Symbol: ""}
	}
	for _, d := range detailedElements {
		var mono, avg float64
		var maxAbundance, totalAbundance float64
		for _, iso := range d.isotopes {
			avg += iso.Mass * iso.Abundance
			totalAbundance += iso.Abundance
			if iso.Abundance > maxAbundance {
				maxAbundance = iso.Abundance
				mono = iso.Mass
			}
		}
		entry := ElementEntry{Symbol: d.symbol, Isotopes: d.isotopes}
		if len(d.isotopes) > 0 {
			entry.MonoisotopicMass = massPtr(mono)
			entry.AverageWeight = massPtr(avg / totalAbundance)
		} else if d.element == Electron {
			entry.MonoisotopicMass = massPtr(0.00054857990907)
			entry.AverageWeight = massPtr(0.00054857990907)
		}
		elementTable[d.element] = entry
	}
	for _, g := range genericElements {
		elementTable[g.element] = ElementEntry{
			Symbol:           g.symbol,
			MonoisotopicMass: massPtr(g.average),
			AverageWeight:    massPtr(g.average),
		}
	}
}

// ElementMass returns the monoisotopic mass of an element, optionally at
// a specific isotope's nucleon count. A nil isotope means "natural
// abundance". The second return value is false when the element has no
// tabulated mass for the requested isotope, per spec.md §4.1's
// "adding an entry whose (element, isotope) has no tabulated mass fails
// the operation".
func ElementMass(element Element, isotope *int) (float64, bool) {
	if int(element) < 0 || int(element) >= elementCount {
		return 0, false
	}
	entry := elementTable[element]
	if isotope == nil {
		if entry.MonoisotopicMass == nil {
			return 0, false
		}
		return *entry.MonoisotopicMass, true
	}
	for _, iso := range entry.Isotopes {
		if iso.Nucleons == *isotope {
			return iso.Mass, true
		}
	}
	return 0, false
}

// ElementAverageWeight returns the element's standard atomic weight,
// falling back to the abundance-weighted mean of its isotope
// distribution when no curated scalar is tabulated (the fallback
// supplements the generated element table per SPEC_FULL.md §4.A).
func ElementAverageWeight(element Element) (float64, bool) {
	if int(element) < 0 || int(element) >= elementCount {
		return 0, false
	}
	entry := elementTable[element]
	if entry.AverageWeight != nil {
		return *entry.AverageWeight, true
	}
	if len(entry.Isotopes) == 0 {
		return 0, false
	}
	var avg float64
	for _, iso := range entry.Isotopes {
		avg += iso.Mass * iso.Abundance
	}
	return avg, true
}

// ElementSymbol returns the element's chemical symbol for Hill-notation
// rendering.
func ElementSymbol(element Element) string {
	if int(element) < 0 || int(element) >= elementCount {
		return "?"
	}
	return elementTable[element].Symbol
}

// ElementIsotopes returns the full isotope distribution for an element,
// used by MostAbundantMass's truncated envelope scan.
func ElementIsotopes(element Element) []IsotopeEntry {
	if int(element) < 0 || int(element) >= elementCount {
		return nil
	}
	return elementTable[element].Isotopes
}
