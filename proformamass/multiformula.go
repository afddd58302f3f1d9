package proformamass

// MultiFormula represents a set of alternative MolecularFormula values,
// used wherever a residue's composition depends on a choice that hasn't
// been resolved yet (ambiguous modification placement, an ambiguous
// amino acid like B/J/Z before it's been assigned a concrete mass). Per
// spec.md §2 module C, combining two MultiFormulas takes the cartesian
// product of their alternatives.
type MultiFormula []MolecularFormula

// SingleFormula wraps one concrete formula as a one-element
// MultiFormula, the common case of an unambiguous residue.
func SingleFormula(f MolecularFormula) MultiFormula {
	return MultiFormula{f}
}

// Combine returns the cartesian product of m and other: every
// alternative in m added to every alternative in other, deduplicated by
// structural equality so that combining two sets that happen to agree
// on a branch doesn't blow up the alternative count.
func (m MultiFormula) Combine(other MultiFormula) MultiFormula {
	if len(m) == 0 {
		return other
	}
	if len(other) == 0 {
		return m
	}
	out := make(MultiFormula, 0, len(m)*len(other))
	for _, a := range m {
		for _, b := range other {
			sum := a.Add(b)
			if !containsFormula(out, sum) {
				out = append(out, sum)
			}
		}
	}
	return out
}

// Mul scales every alternative by k.
func (m MultiFormula) Mul(k int32) MultiFormula {
	out := make(MultiFormula, len(m))
	for i, f := range m {
		out[i] = f.Mul(k)
	}
	return out
}

// MonoisotopicMasses returns the monoisotopic mass of every
// alternative, in the same order as m.
func (m MultiFormula) MonoisotopicMasses() []float64 {
	out := make([]float64, len(m))
	for i, f := range m {
		out[i] = f.MonoisotopicMass()
	}
	return out
}

func containsFormula(set MultiFormula, f MolecularFormula) bool {
	for _, existing := range set {
		if existing.Equal(f) {
			return true
		}
	}
	return false
}
