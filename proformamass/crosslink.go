package proformamass

// ModifierKind tags which variant of Modifier (spec.md §3's
// "Modification" tagged union — named Modifier here to avoid colliding
// with the teacher's text-level *Modification parse-result type in
// modification.go) a value holds.
type ModifierKind int

const (
	ModifierSimple ModifierKind = iota
	ModifierAmbiguous
	ModifierCrossLink
)

// AmbiguousModifier is spec.md §3's Modification::Ambiguous variant: a
// modification that may or may not be placed at this site, sharing its
// identity with every other candidate site through Group/ID.
type AmbiguousModifier struct {
	Group             string
	ID                int
	Modification      *SimpleModification
	LocalisationScore *float64
	Preferred         bool
}

// CrossLinkModifier is spec.md §3's Modification::CrossLink variant.
// PeerPeptideIndex/PeerSequenceIndex locate the other endpoint within
// the owning CompoundPeptidoformIon's Peptides list.
type CrossLinkModifier struct {
	PeerPeptideIndex  int
	PeerSequenceIndex int
	Linker            *SimpleModification
	Name              string
	Side              CrossLinkSide
	IsBranch          bool
}

// Modifier is the tagged union a SequenceElement's Modifications list
// holds.
type Modifier struct {
	Kind      ModifierKind
	Simple    *SimpleModification
	Ambiguous *AmbiguousModifier
	CrossLink *CrossLinkModifier
}

// Formula resolves a Modifier to the MultiFormula it contributes: a
// Simple modifier contributes exactly one alternative; an Ambiguous
// modifier contributes either its modification's formula or the empty
// formula (the "not placed here" alternative), which is how the
// fragment generator's per-position MultiFormula expansion realises
// spec.md §4.6 step 1 ("compute the multiset of possible full formulas
// (one per combination of ambiguous modification placements)"); a
// CrossLink modifier contributes its linker's own formula once per
// bond (the peer endpoint must not double-count it, enforced by the
// visited-bond set in Peptidoform.Formula).
func (m Modifier) Formula() MultiFormula {
	switch m.Kind {
	case ModifierSimple:
		if m.Simple == nil {
			return MultiFormula{NewMolecularFormula(0)}
		}
		return SingleFormula(m.Simple.ComputeFormula())
	case ModifierAmbiguous:
		if m.Ambiguous == nil || m.Ambiguous.Modification == nil {
			return SingleFormula(NewMolecularFormula(0))
		}
		return MultiFormula{NewMolecularFormula(0), m.Ambiguous.Modification.ComputeFormula()}
	case ModifierCrossLink:
		if m.CrossLink == nil || m.CrossLink.Linker == nil {
			return SingleFormula(NewMolecularFormula(0))
		}
		return SingleFormula(m.CrossLink.Linker.ComputeFormula())
	}
	return SingleFormula(NewMolecularFormula(0))
}
