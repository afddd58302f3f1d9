package proformamass

// Peptidoform is a single linear (possibly cross-linked, possibly
// ambiguous) chain: module H of spec.md §2, the central value every
// parser, fragmentation, and annotation operation revolves around.
type Peptidoform struct {
	Sequence            []SequenceElement
	NTerm               []Modifier
	CTerm               []Modifier
	GlobalIsotopeMods   []GlobalIsotopeSubstitution
	LabileMods          []Modifier
	ChargeCarriers      *MolecularCharge
	CrossLinks          []PeptidoformCrossLink
	Complexity          Complexity
	SequenceAmbiguities []ResidueAmbiguity
}

// ResidueAmbiguity records a ProForma `(?AG)`-style sequence ambiguity:
// the residue identity at Position is uncertain among the alternatives
// folded into Value by the teacher's parser. Unlike AmbiguousModifier
// (module G, a modification that may or may not be present) this is
// ambiguity over which residue is there at all, so it does not
// contribute to Formula — there is no single resolved composition to
// add, only a note for callers inspecting provenance.
type ResidueAmbiguity struct {
	Value    string
	Position int
}

// PeptidoformCrossLink records one cross-link bond originating at this
// peptidoform: the local attachment site (SequenceIndex) and the bond's
// Name. The peer endpoint is not stored here; it is carried by the
// CrossLinkModifier of the same Name (PeerPeptideIndex/
// PeerSequenceIndex).
type PeptidoformCrossLink struct {
	SequenceIndex int
	Name          string
}

// Formula computes the peptidoform's full MultiFormula: the sum of
// every residue's per-position MultiFormula (cartesian-combined, so
// ambiguous placements fan out correctly), the terminal modifiers, any
// labile modifications (which contribute to the unfragmented precursor
// but are expected to be lost before MS2, per spec.md §4.8), and global
// isotope substitutions applied last across the whole sum. Cross-link
// modifiers are walked with a visited-bond set so a bond counted at one
// endpoint's SequenceElement is not double-counted when the peer
// endpoint's modifier is also visited, per spec.md §9's note on
// sharing cross-link mass between both residues that carry it.
func (p Peptidoform) Formula() MultiFormula {
	result := SingleFormula(NewMolecularFormula(0))

	visitedCrossLinks := map[string]bool{}
	for i := range p.Sequence {
		se := p.Sequence[i]
		contrib := SingleFormula(NewMolecularFormula(0))
		base, ok := residueFormula(se.AminoAcid)
		if ok {
			contrib = SingleFormula(base)
		}
		for _, mod := range se.Modifications {
			if mod.Kind == ModifierCrossLink && mod.CrossLink != nil {
				key := mod.CrossLink.Name
				if visitedCrossLinks[key] {
					continue
				}
				visitedCrossLinks[key] = true
			}
			contrib = contrib.Combine(mod.Formula())
		}
		for _, amb := range se.AmbiguousModifications {
			m := Modifier{Kind: ModifierAmbiguous, Ambiguous: &amb}
			contrib = contrib.Combine(m.Formula())
		}
		result = result.Combine(contrib)
	}

	for _, mod := range p.NTerm {
		result = result.Combine(mod.Formula())
	}
	for _, mod := range p.CTerm {
		result = result.Combine(mod.Formula())
	}
	for _, mod := range p.LabileMods {
		result = result.Combine(mod.Formula())
	}

	// residueElemental entries are already in "residue form" (a free
	// amino acid with one water removed per peptide-bond convention), so
	// the chain as a whole needs exactly one water added back once,
	// regardless of length, to restore the free N-terminal H and
	// C-terminal OH.
	if len(p.Sequence) > 0 {
		water := formulaOf(map[Element]int32{H: 2, O: 1})
		result = result.Combine(SingleFormula(water))
	}

	if p.ChargeCarriers != nil {
		result = result.Combine(SingleFormula(p.ChargeCarriers.Formula()))
	}

	if len(p.GlobalIsotopeMods) > 0 {
		substituted := make(MultiFormula, len(result))
		for i, f := range result {
			substituted[i] = f.WithGlobalIsotopeSubstitutions(p.GlobalIsotopeMods)
		}
		result = substituted
	}

	return result
}

// PeptidoformIon pairs a Peptidoform with the resolved charge state it
// was observed at, per spec.md §3's PeptidoformIon.
type PeptidoformIon struct {
	Peptidoform Peptidoform
	Charge      *MolecularCharge
}

// Formula resolves the ion's MultiFormula, preferring the ion-level
// Charge over any charge carriers already set on the Peptidoform.
func (ion PeptidoformIon) Formula() MultiFormula {
	p := ion.Peptidoform
	if ion.Charge != nil {
		p.ChargeCarriers = ion.Charge
	}
	return p.Formula()
}

// CompoundPeptidoformIon is one or more PeptidoformIon chains observed
// together: chimeric spectra (independent co-isolated peptidoforms,
// ProForma's `+` separator) and multi-chain cross-linked/disulfide
// complexes (ProForma's `//` separator), per spec.md §3.
type CompoundPeptidoformIon struct {
	Peptides []PeptidoformIon
}

// Formula combines every peptide's MultiFormula; for a chimeric set
// this produces the joint precursor envelope only in the sense of
// total ion population, not a single summed mass — callers computing
// an individual peptide's mass should index into Peptides directly
// rather than call this for a chimeric CompoundPeptidoformIon.
func (c CompoundPeptidoformIon) Formula() MultiFormula {
	result := SingleFormula(NewMolecularFormula(0))
	for _, ion := range c.Peptides {
		result = result.Combine(ion.Formula())
	}
	return result
}
