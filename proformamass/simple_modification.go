package proformamass

import "sync"

// SimpleModificationKind tags which variant of SimpleModification a
// value holds, per spec.md §3.
type SimpleModificationKind int

const (
	ModMass SimpleModificationKind = iota
	ModFormula
	ModGlycan
	ModGlycanStructure
	ModDatabase
	ModLinker
	ModGno
)

// NeutralLoss is a formula the fragment generator may subtract from a
// fragment carrying this modification, per a Database/Linker
// modification's "specificities: [(rules, neutral_losses,
// diagnostic_ions)]".
type NeutralLoss struct {
	Formula MolecularFormula
	Rules   []PlacementRule
}

// DatabaseSpecificity pairs a placement-rule set with the neutral
// losses and diagnostic ions it contributes, per spec.md §3's
// SimpleModification::Database.
type DatabaseSpecificity struct {
	Rules          []PlacementRule
	NeutralLosses  []MolecularFormula
	DiagnosticIons []MolecularFormula
}

// GnoSubsumptionLevel is the GNOme ontology's structural-specificity
// rank for a composition entry (e.g. "composition", "topology",
// "saccharide").
type GnoSubsumptionLevel string

// SimpleModification is the immutable, reference-counted-in-spirit
// (Go: shared via *SimpleModification handles, see ontology.go) tagged
// union from spec.md §3.
type SimpleModification struct {
	Kind SimpleModificationKind

	// ModMass
	Mass float64

	// ModFormula
	Formula MolecularFormula

	// ModGlycan: flat (monosaccharide, count) composition
	GlycanComposition []GlycanComponent

	// ModGlycanStructure
	Glycan GlycanStructure

	// ModDatabase
	ID             string
	DatabaseFormula MolecularFormula
	Specificities  []DatabaseSpecificity

	// ModLinker
	LinkerID            string
	LinkerFormula        MolecularFormula
	LinkerLength         *float64
	LinkerSpecificities  []LinkerSpecificity

	// ModGno
	GnoID              string
	GnoComposition     []GlycanComponent
	SubsumptionLevel   GnoSubsumptionLevel
	StructureScore     *float64
	Motif              *string
	Taxonomy           []string
	GlycomeAtlas       []string

	// Shared metadata used by ontology lookups and rendering.
	Name   string
	Source string // "Unimod", "PSI-MOD", "RESID", "XLMOD", "GNO", "Custom", ""
}

// GlycanComponent is one (monosaccharide, count) pair of a flat glycan
// composition modification.
type GlycanComponent struct {
	Sugar MonoSaccharide
	Count int32
}

// ComputeFormula resolves any SimpleModification variant to a concrete
// MolecularFormula for mass arithmetic; glycan variants sum their
// composition, database/linker variants use their curated formula, and
// bare-mass modifications use AdditionalMass alone.
func (m *SimpleModification) ComputeFormula() MolecularFormula {
	switch m.Kind {
	case ModMass:
		return NewMolecularFormula(m.Mass)
	case ModFormula:
		return m.Formula
	case ModGlycan:
		f := NewMolecularFormula(0)
		for _, c := range m.GlycanComposition {
			contrib := c.Sugar.Formula().Mul(c.Count)
			f = f.Add(contrib)
		}
		return f
	case ModGlycanStructure:
		return m.Glycan.Formula()
	case ModDatabase:
		return m.DatabaseFormula
	case ModLinker:
		return m.LinkerFormula
	case ModGno:
		f := NewMolecularFormula(0)
		for _, c := range m.GnoComposition {
			f = f.Add(c.Sugar.Formula().Mul(c.Count))
		}
		return f
	}
	return NewMolecularFormula(0)
}

// MatchingSpecificities returns the indices of m.Specificities whose
// rule set is satisfied by ctx, for Database modifications.
func (m *SimpleModification) MatchingSpecificities(ctx placementContext) []int {
	var out []int
	for i, spec := range m.Specificities {
		if anyRuleMatches(spec.Rules, ctx) {
			out = append(out, i)
		}
	}
	return out
}

// handle wraps a SimpleModification in a reference shared across every
// peptidoform that resolves the same ontology entry, matching spec.md
// §9's "wrap each SimpleModification in a thread-safe reference-counted
// handle". Go's garbage collector already reclaims unreferenced
// entries, so the handle here is a plain shared pointer rather than an
// explicit refcount; what matters for the invariant is that ontology
// tables own the canonical *SimpleModification and every caller borrows
// the same pointer instead of deep-copying it.
type handle = *SimpleModification

var handlePool sync.Map // string(ontology+":"+id) -> handle; no registry lookup in this package reads or writes it
