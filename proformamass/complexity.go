package proformamass

// Complexity is the runtime stand-in for spec.md §4.7's phantom type
// index. Go has no phantom/marker generics that give compile-time
// refusal without per-callsite code generation, so per spec.md §9's own
// guidance ("pushes... into an explicit early-return check in languages
// that do not" support phantom types) every Peptidoform carries its
// Complexity as a plain field, and operations that require a stronger
// guarantee call Peptidoform.Downcast and handle the error instead of
// relying on the type checker.
type Complexity int

const (
	// Linked is the top of the lattice: cross-links, branches,
	// ambiguity, and non-proton charge carriers are all permitted.
	Linked Complexity = iota
	// Linear excludes cross-links and branches.
	Linear
	// SimpleLinear additionally excludes labile modifications, global
	// isotope modifications, and non-proton charge carriers.
	SimpleLinear
	// SemiAmbiguous additionally excludes ambiguous modifications and
	// ambiguous residues.
	SemiAmbiguous
	// UnAmbiguous additionally excludes ambiguous amino-acid codes
	// (B, J, Z).
	UnAmbiguous
)

func (c Complexity) String() string {
	switch c {
	case Linked:
		return "Linked"
	case Linear:
		return "Linear"
	case SimpleLinear:
		return "SimpleLinear"
	case SemiAmbiguous:
		return "SemiAmbiguous"
	case UnAmbiguous:
		return "UnAmbiguous"
	}
	return "?"
}

// atLeast reports whether c guarantees everything required demands,
// i.e. c excludes at least as much as required does. Complexity levels
// form a total order in this module (Linked < Linear < SimpleLinear <
// SemiAmbiguous < UnAmbiguous), so "guarantees" is simply "is ranked at
// or above".
func (c Complexity) atLeast(required Complexity) bool {
	return c >= required
}

// ambiguousAminoAcids are the codes UnAmbiguous peptidoforms must not
// contain: B (Asx), J (Leu/Ile), Z (Glx).
var ambiguousAminoAcids = map[string]bool{"B": true, "J": true, "Z": true}

// Downcast validates that p actually satisfies `required` and, on
// success, returns a copy of p whose Complexity field is set to
// required. Upcasting (loosening the required level) is always free
// and does not need this function — just read a stricter-typed value
// through a weaker-level alias. Downcasting runs the validator named by
// spec.md §4.7's table, inspecting exactly the features the target
// level excludes beyond Linked.
func (p Peptidoform) Downcast(required Complexity) (Peptidoform, error) {
	if p.Complexity.atLeast(required) {
		out := p
		out.Complexity = required
		return out, nil
	}
	if required >= Linear && (len(p.CrossLinks) > 0 || p.hasBranch()) {
		return Peptidoform{}, newSemanticError("complexity downcast failed", "peptidoform has cross-links or branches, cannot downcast to Linear or stricter", nil, nil)
	}
	if required >= SimpleLinear {
		if len(p.LabileMods) > 0 {
			return Peptidoform{}, newSemanticError("complexity downcast failed", "peptidoform has labile modifications, cannot downcast to SimpleLinear or stricter", nil, nil)
		}
		if len(p.GlobalIsotopeMods) > 0 {
			return Peptidoform{}, newSemanticError("complexity downcast failed", "peptidoform has global isotope modifications, cannot downcast to SimpleLinear or stricter", nil, nil)
		}
		if p.ChargeCarriers != nil && !p.ChargeCarriers.isProtonsOnly() {
			return Peptidoform{}, newSemanticError("complexity downcast failed", "peptidoform has non-proton charge carriers, cannot downcast to SimpleLinear or stricter", nil, nil)
		}
	}
	if required >= SemiAmbiguous {
		if len(p.SequenceAmbiguities) > 0 {
			return Peptidoform{}, newSemanticError("complexity downcast failed", "peptidoform has ambiguous residues, cannot downcast to SemiAmbiguous or stricter", nil, nil)
		}
		for _, se := range p.Sequence {
			if len(se.AmbiguousModifications) > 0 || se.AmbiguousGroup != nil {
				return Peptidoform{}, newSemanticError("complexity downcast failed", "peptidoform has ambiguous modifications or residues, cannot downcast to SemiAmbiguous or stricter", nil, nil)
			}
		}
	}
	if required >= UnAmbiguous {
		for _, se := range p.Sequence {
			if ambiguousAminoAcids[se.AminoAcid] {
				return Peptidoform{}, newSemanticError("complexity downcast failed", "peptidoform contains an ambiguous amino-acid code (B/J/Z), cannot downcast to UnAmbiguous", nil, nil)
			}
		}
	}
	out := p
	out.Complexity = required
	return out, nil
}

func (p Peptidoform) hasBranch() bool {
	for _, se := range p.Sequence {
		for _, m := range se.Modifications {
			if m.Kind == ModifierCrossLink && m.CrossLink != nil && m.CrossLink.IsBranch {
				return true
			}
		}
	}
	return false
}
