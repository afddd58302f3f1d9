package proformamass

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/slices"
	gonumfloats "gonum.org/v1/gonum/floats"
)

// FormulaEntry is one (element, isotope, count) triple of a
// MolecularFormula, per spec.md §3's "ordered sequence of
// (Element, Option<Isotope>, Count: i32) entries".
type FormulaEntry struct {
	Element Element
	Isotope *int // nil means natural abundance
	Count   int32
}

func isotopeLess(a, b *int) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true // natural abundance sorts before any isotope-specific entry
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

func isotopeEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func entryLess(a, b FormulaEntry) bool {
	if a.Element != b.Element {
		return a.Element < b.Element
	}
	return isotopeLess(a.Isotope, b.Isotope)
}

// MolecularFormula is the ordered sparse multiset over (element,
// isotope, count) described in spec.md §3/§4.1, plus a single additive
// mass offset treated as monoisotopic.
//
// Invariants (enforced by every mutator in this file): Entries is
// sorted by (Element, Isotope), no two entries share (Element,
// Isotope), and no entry has Count == 0.
type MolecularFormula struct {
	Entries        []FormulaEntry
	AdditionalMass float64
}

// NewMolecularFormula builds an empty formula with the given additive
// mass offset.
func NewMolecularFormula(additionalMass float64) MolecularFormula {
	return MolecularFormula{AdditionalMass: additionalMass}
}

// AddEntry inserts count additional atoms of (element, isotope),
// merging with an existing entry for the same (element, isotope) or
// removing it if the merged count is zero. It returns false without
// mutating the formula if the requested (element, isotope) has no
// tabulated mass, per spec.md §4.1.
func (m *MolecularFormula) AddEntry(element Element, isotope *int, count int32) bool {
	if count == 0 {
		return true
	}
	if _, ok := ElementMass(element, isotope); !ok {
		return false
	}
	target := FormulaEntry{Element: element, Isotope: isotope, Count: count}
	idx, found := slices.BinarySearchFunc(m.Entries, target, func(a, b FormulaEntry) int {
		if entryLess(a, b) {
			return -1
		}
		if entryLess(b, a) {
			return 1
		}
		return 0
	})
	if found {
		newCount := m.Entries[idx].Count + count
		if newCount == 0 {
			m.Entries = slices.Delete(m.Entries, idx, idx+1)
		} else {
			m.Entries[idx].Count = newCount
		}
		return true
	}
	m.Entries = slices.Insert(m.Entries, idx, target)
	return true
}

// Clone returns a deep copy safe for independent mutation.
func (m MolecularFormula) Clone() MolecularFormula {
	out := MolecularFormula{AdditionalMass: m.AdditionalMass, Entries: make([]FormulaEntry, len(m.Entries))}
	copy(out.Entries, m.Entries)
	return out
}

// Add merges two formulas, combining entries that share (element,
// isotope) and summing AdditionalMass. Addition is commutative and
// associative because entries are merged position-wise in sorted
// order, per spec.md §4.1.
func (m MolecularFormula) Add(other MolecularFormula) MolecularFormula {
	return m.combine(other, 1)
}

// Sub subtracts other from m, element-wise.
func (m MolecularFormula) Sub(other MolecularFormula) MolecularFormula {
	return m.combine(other, -1)
}

func (m MolecularFormula) combine(other MolecularFormula, sign int32) MolecularFormula {
	out := MolecularFormula{AdditionalMass: m.AdditionalMass + float64(sign)*other.AdditionalMass}
	i, j := 0, 0
	for i < len(m.Entries) || j < len(other.Entries) {
		switch {
		case j >= len(other.Entries) || (i < len(m.Entries) && entryLess(m.Entries[i], other.Entries[j])):
			out.Entries = append(out.Entries, m.Entries[i])
			i++
		case i >= len(m.Entries) || entryLess(other.Entries[j], m.Entries[i]):
			e := other.Entries[j]
			e.Count *= sign
			if e.Count != 0 {
				out.Entries = append(out.Entries, e)
			}
			j++
		default:
			count := m.Entries[i].Count + sign*other.Entries[j].Count
			if count != 0 {
				out.Entries = append(out.Entries, FormulaEntry{Element: m.Entries[i].Element, Isotope: m.Entries[i].Isotope, Count: count})
			}
			i++
			j++
		}
	}
	return out
}

// Mul scales every entry's count and AdditionalMass by k.
func (m MolecularFormula) Mul(k int32) MolecularFormula {
	out := MolecularFormula{AdditionalMass: m.AdditionalMass * float64(k), Entries: make([]FormulaEntry, 0, len(m.Entries))}
	if k == 0 {
		return out
	}
	for _, e := range m.Entries {
		out.Entries = append(out.Entries, FormulaEntry{Element: e.Element, Isotope: e.Isotope, Count: e.Count * k})
	}
	return out
}

// MonoisotopicMass sums count * element_mass(isotope) over all entries
// plus AdditionalMass.
func (m MolecularFormula) MonoisotopicMass() float64 {
	total := m.AdditionalMass
	for _, e := range m.Entries {
		mass, ok := ElementMass(e.Element, e.Isotope)
		if !ok {
			continue
		}
		total += mass * float64(e.Count)
	}
	return total
}

// AverageWeight sums count * average_weight(element) over all entries
// plus AdditionalMass (AdditionalMass is always treated as
// monoisotopic per spec.md §3, so it is not itself averaged).
func (m MolecularFormula) AverageWeight() float64 {
	total := m.AdditionalMass
	for _, e := range m.Entries {
		avg, ok := ElementAverageWeight(e.Element)
		if !ok {
			continue
		}
		total += avg * float64(e.Count)
	}
	return total
}

// isotopeEnvelopeThreshold truncates the isotope-distribution scan
// MostAbundantMass performs; abundances below this fraction of the
// monoisotopic peak are not explored.
const isotopeEnvelopeThreshold = 1e-4

// MostAbundantMass estimates the m/z of the most abundant isotopologue
// using an averagine-like integer-Dalton offset: it walks successive
// +1 Da shifts, approximating each shift's relative abundance from the
// formula's own carbon/sulfur isotope contributions (the elements with
// the most natural heavy-isotope abundance in peptide chemistry), and
// returns the monoisotopic mass plus the Da offset with the highest
// approximate abundance. This is the known integer-Dalton
// approximation spec.md §9 Open Question (b) calls out; it is not a
// full isotope-distribution convolution.
func (m MolecularFormula) MostAbundantMass() float64 {
	mono := m.MonoisotopicMass()
	var carbonCount, sulfurCount int32
	for _, e := range m.Entries {
		switch e.Element {
		case C:
			carbonCount += e.Count
		case S:
			sulfurCount += e.Count
		}
	}
	if carbonCount == 0 {
		return mono
	}
	// Binomial-ish envelope over 13C incorporation, truncated at a
	// handful of shifts; sulfur's 34S contributes a smaller secondary
	// +2 Da peak that can dominate for sulfur-rich formulas.
	const c13Abundance = 0.0107
	const s34Abundance = 0.0425
	maxShifts := 8
	rel := make([]float64, maxShifts+1)
	rel[0] = 1.0
	n := float64(carbonCount)
	for k := 1; k <= maxShifts; k++ {
		rel[k] = rel[k-1] * (n - float64(k) + 1) / float64(k) * (c13Abundance / (1 - c13Abundance))
		if rel[k] < isotopeEnvelopeThreshold {
			rel = rel[:k+1]
			break
		}
	}
	if sulfurCount > 0 && len(rel) > 2 {
		rel[2] += float64(sulfurCount) * s34Abundance
	}
	best := gonumfloats.MaxIdx(rel)
	return mono + float64(best)
}

// Charge returns -count(Electron); 0 if no Electron entry is present.
func (m MolecularFormula) Charge() int32 {
	for _, e := range m.Entries {
		if e.Element == Electron {
			return -e.Count
		}
	}
	return 0
}

// GlobalIsotopeSubstitution pairs an element with the isotope every
// natural-abundance occurrence of that element should be replaced by,
// per spec.md §3's Peptidoform.global_isotope_mods.
type GlobalIsotopeSubstitution struct {
	Element Element
	Isotope *int
}

// WithGlobalIsotopeSubstitutions returns a copy of m where every entry
// matching a substitution's element and carrying a natural-abundance
// isotope (nil) has its isotope replaced, then re-sorts and
// re-deduplicates (a substitution can cause two entries to collide,
// e.g. natural C and already-labelled 13C both becoming 13C).
func (m MolecularFormula) WithGlobalIsotopeSubstitutions(subs []GlobalIsotopeSubstitution) MolecularFormula {
	out := MolecularFormula{AdditionalMass: m.AdditionalMass}
	for _, e := range m.Entries {
		newIsotope := e.Isotope
		if e.Isotope == nil {
			for _, s := range subs {
				if s.Element == e.Element {
					newIsotope = s.Isotope
					break
				}
			}
		}
		out.AddEntry(e.Element, newIsotope, e.Count)
	}
	return out
}

// HillNotation renders the formula in Hill order: carbon first (if
// present), then hydrogen (if carbon is present), then the remaining
// elements in element-number order; isotope-specific entries carry
// their isotope prefix (e.g. "13C2"); a non-zero AdditionalMass is
// appended as a signed suffix.
func (m MolecularFormula) HillNotation() string {
	var sb strings.Builder
	remaining := make([]FormulaEntry, len(m.Entries))
	copy(remaining, m.Entries)

	writeElement := func(el Element, iso *int) bool {
		for i, e := range remaining {
			if e.Element == el && isotopeEqual(e.Isotope, iso) {
				writeEntry(&sb, e)
				remaining = append(remaining[:i], remaining[i+1:]...)
				return true
			}
		}
		return false
	}

	hasCarbon := false
	for _, e := range remaining {
		if e.Element == C {
			hasCarbon = true
			break
		}
	}
	if hasCarbon {
		for writeElement(C, nil) {
		}
		for writeElement(H, nil) {
		}
	}
	slices.SortFunc(remaining, func(a, b FormulaEntry) int {
		if entryLess(a, b) {
			return -1
		}
		if entryLess(b, a) {
			return 1
		}
		return 0
	})
	for _, e := range remaining {
		writeEntry(&sb, e)
	}

	if m.AdditionalMass != 0 {
		fmt.Fprintf(&sb, "%+g", m.AdditionalMass)
	}
	return sb.String()
}

func writeEntry(sb *strings.Builder, e FormulaEntry) {
	if e.Isotope != nil {
		fmt.Fprintf(sb, "%d%s", *e.Isotope, ElementSymbol(e.Element))
	} else {
		sb.WriteString(ElementSymbol(e.Element))
	}
	if e.Count != 1 {
		fmt.Fprintf(sb, "%d", e.Count)
	}
}

// Equal reports whether two formulas are structurally identical (same
// entries in the same order, same AdditionalMass). Because every
// mutator keeps Entries sorted and deduplicated, two formulas
// representing the same chemistry always compare equal this way.
func (m MolecularFormula) Equal(other MolecularFormula) bool {
	if !floatsEqual(m.AdditionalMass, other.AdditionalMass) {
		return false
	}
	if len(m.Entries) != len(other.Entries) {
		return false
	}
	for i := range m.Entries {
		a, b := m.Entries[i], other.Entries[i]
		if a.Element != b.Element || a.Count != b.Count || !isotopeEqual(a.Isotope, b.Isotope) {
			return false
		}
	}
	return true
}

func floatsEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
