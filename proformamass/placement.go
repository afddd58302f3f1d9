package proformamass

// TermPosition narrows where a PlacementRule or LinkerSpecificity can
// fire, per spec.md §3's Position enum.
type TermPosition int

const (
	PositionAnywhere TermPosition = iota
	PositionAnyNTerm
	PositionAnyCTerm
	PositionProteinNTerm
	PositionProteinCTerm
)

// placementContext describes the residue a rule is being evaluated
// against: its one-letter code, whether it sits at either terminus of
// the peptidoform (vs. the protein, which this module cannot see and
// so never claims to satisfy ProteinNTerm/ProteinCTerm beyond the
// peptidoform's own termini), and the PSI-MOD ids already present.
type placementContext struct {
	Residue        string
	IsPeptideNTerm bool
	IsPeptideCTerm bool
	ExistingPSIMod []string
}

func (pos TermPosition) satisfies(ctx placementContext) bool {
	switch pos {
	case PositionAnywhere:
		return true
	case PositionAnyNTerm, PositionProteinNTerm:
		return ctx.IsPeptideNTerm
	case PositionAnyCTerm, PositionProteinCTerm:
		return ctx.IsPeptideCTerm
	}
	return false
}

// PlacementRuleKind tags which variant of PlacementRule a value holds.
type PlacementRuleKind int

const (
	RuleAnywhere PlacementRuleKind = iota
	RuleAminoAcid
	RuleTerminal
	RulePsiModification
)

// PlacementRule is the tagged union from spec.md §3: Anywhere |
// AminoAcid(set, Position) | Terminal(Position) |
// PsiModification(id, Position).
type PlacementRule struct {
	Kind       PlacementRuleKind
	Residues   map[string]bool // RuleAminoAcid
	Position   TermPosition    // RuleAminoAcid, RuleTerminal, RulePsiModification
	PsiModID   string          // RulePsiModification
}

// RulePossible is the result of evaluating a PlacementRule or
// LinkerSpecificity against a candidate site, per spec.md §4.3.
type RulePossible struct {
	Kind  RulePossibleKind
	Index map[int]bool // which specificity-list indices matched, for linkers
}

type RulePossibleKind int

const (
	PossibleNo RulePossibleKind = iota
	PossibleSymmetric
	PossibleAsymmetricLeft
	PossibleAsymmetricRight
)

var noMatch = RulePossible{Kind: PossibleNo}

// IsPossible evaluates a single PlacementRule against a residue at a
// given position, per spec.md §4.3's per-kind rules. Ordinary
// (non-linker) modifications only ever resolve to "possible" or "not
// possible"; the Symmetric/Asymmetric distinction is meaningful for
// IsPossibleLinker below.
func (r PlacementRule) IsPossible(ctx placementContext) bool {
	switch r.Kind {
	case RuleAnywhere:
		return true
	case RuleAminoAcid:
		return r.Residues[ctx.Residue] && r.Position.satisfies(ctx)
	case RuleTerminal:
		atEnd := ctx.IsPeptideNTerm || ctx.IsPeptideCTerm
		return atEnd && r.Position.satisfies(ctx)
	case RulePsiModification:
		if !r.Position.satisfies(ctx) {
			return false
		}
		for _, id := range ctx.ExistingPSIMod {
			if id == r.PsiModID {
				return true
			}
		}
		return false
	}
	return false
}

// LinkerSpecificityKind distinguishes a symmetric cross-linker
// specificity (same rule set on both ends) from an asymmetric one
// (distinct rule sets per end), per spec.md §3.
type LinkerSpecificityKind int

const (
	LinkerSymmetric LinkerSpecificityKind = iota
	LinkerAsymmetric
)

// LinkerSpecificity is one entry of a Linker's specificity list, per
// spec.md §3: a symmetric rule set, or an asymmetric (left, right)
// pair, plus the stub formulas left on each side after cleavage and any
// diagnostic ions the linker produces.
type LinkerSpecificity struct {
	Kind            LinkerSpecificityKind
	SymmetricRules  []PlacementRule
	LeftRules       []PlacementRule
	RightRules      []PlacementRule
	LeftStub        MolecularFormula
	RightStub       MolecularFormula
	HasStubs        bool
	DiagnosticIons  []MolecularFormula
}

// IsPossibleLinker evaluates every specificity in specs against ctx and
// returns which side(s) (symmetric, left, or right) matched, tagged by
// the index of the matching specificity list entry, per spec.md §4.3
// ("each specificity contributes its set index to the returned
// RulePossible tag").
func IsPossibleLinker(specs []LinkerSpecificity, ctx placementContext) RulePossible {
	symmetric := map[int]bool{}
	left := map[int]bool{}
	right := map[int]bool{}
	for i, spec := range specs {
		switch spec.Kind {
		case LinkerSymmetric:
			if anyRuleMatches(spec.SymmetricRules, ctx) {
				symmetric[i] = true
			}
		case LinkerAsymmetric:
			if anyRuleMatches(spec.LeftRules, ctx) {
				left[i] = true
			}
			if anyRuleMatches(spec.RightRules, ctx) {
				right[i] = true
			}
		}
	}
	switch {
	case len(symmetric) > 0:
		return RulePossible{Kind: PossibleSymmetric, Index: symmetric}
	case len(left) > 0:
		return RulePossible{Kind: PossibleAsymmetricLeft, Index: left}
	case len(right) > 0:
		return RulePossible{Kind: PossibleAsymmetricRight, Index: right}
	default:
		return noMatch
	}
}

func anyRuleMatches(rules []PlacementRule, ctx placementContext) bool {
	for _, r := range rules {
		if r.IsPossible(ctx) {
			return true
		}
	}
	return false
}

// CrossLinkSideKind tags a CrossLinkSide variant.
type CrossLinkSideKind int

const (
	SideSymmetric CrossLinkSideKind = iota
	SideLeft
	SideRight
)

// CrossLinkSide records, for one endpoint of an attached cross-link,
// which side it satisfies and which specificity-list indices it
// matched on, per spec.md §3.
type CrossLinkSide struct {
	Kind    CrossLinkSideKind
	Indices map[int]bool
}

// AttachCrossLink intersects the RulePossible results from both
// candidate cross-link endpoints and decides the permitted side
// assignment per spec.md §4.3:
//
//   - both symmetric -> Symmetric(intersection) on both ends
//   - asymmetric-left on one and symmetric/asymmetric-right on the
//     other -> Left/Right on respective ends
//   - otherwise -> fails
//
// Mass-only or formula-only linkers (no specificity list) bypass rule
// intersection entirely and always attach as symmetric with an empty
// index set.
func AttachCrossLink(specs []LinkerSpecificity, left, right placementContext) (leftSide, rightSide CrossLinkSide, ok bool) {
	if len(specs) == 0 {
		return CrossLinkSide{Kind: SideSymmetric}, CrossLinkSide{Kind: SideSymmetric}, true
	}
	a := IsPossibleLinker(specs, left)
	b := IsPossibleLinker(specs, right)

	switch {
	case a.Kind == PossibleSymmetric && b.Kind == PossibleSymmetric:
		inter := intersectIndex(a.Index, b.Index)
		if len(inter) == 0 {
			return CrossLinkSide{}, CrossLinkSide{}, false
		}
		return CrossLinkSide{Kind: SideSymmetric, Indices: inter}, CrossLinkSide{Kind: SideSymmetric, Indices: inter}, true
	case a.Kind == PossibleAsymmetricLeft && (b.Kind == PossibleSymmetric || b.Kind == PossibleAsymmetricRight):
		return CrossLinkSide{Kind: SideLeft, Indices: a.Index}, CrossLinkSide{Kind: SideRight, Indices: b.Index}, true
	case b.Kind == PossibleAsymmetricLeft && (a.Kind == PossibleSymmetric || a.Kind == PossibleAsymmetricRight):
		return CrossLinkSide{Kind: SideRight, Indices: a.Index}, CrossLinkSide{Kind: SideLeft, Indices: b.Index}, true
	default:
		return CrossLinkSide{}, CrossLinkSide{}, false
	}
}

func intersectIndex(a, b map[int]bool) map[int]bool {
	out := map[int]bool{}
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}
