package proformamass

import (
	"fmt"
	"strconv"
	"strings"
)

// ToProForma renders the peptidoform back to ProForma text, the inverse
// of ParseToPeptidoform, in the teacher's bracket-appending style
// (amino_acid.go's String(): residue letter followed by each
// modification in its own "[...]"). Ambiguous and cross-link modifiers
// render with the same "#" suffix convention the teacher's
// modification.go ToProforma uses for its pipe-value variants, since
// this module's Modifier/SimpleModification types replace that text
// model but keep its wire grammar.
func (p Peptidoform) ToProForma() string {
	var sb strings.Builder

	for _, mod := range p.LabileMods {
		sb.WriteString("{")
		sb.WriteString(renderModifier(mod))
		sb.WriteString("}")
	}

	for _, mod := range p.NTerm {
		sb.WriteString("[")
		sb.WriteString(renderModifier(mod))
		sb.WriteString("]-")
	}

	for _, se := range p.Sequence {
		sb.WriteString(se.AminoAcid)
		for _, mod := range se.Modifications {
			sb.WriteString("[")
			sb.WriteString(renderModifier(mod))
			sb.WriteString("]")
		}
		for _, amb := range se.AmbiguousModifications {
			sb.WriteString("[")
			sb.WriteString(renderAmbiguous(amb))
			sb.WriteString("]")
		}
	}

	if len(p.CTerm) > 0 {
		sb.WriteString("-")
		for _, mod := range p.CTerm {
			sb.WriteString("[")
			sb.WriteString(renderModifier(mod))
			sb.WriteString("]")
		}
	}

	if p.ChargeCarriers != nil {
		sb.WriteString("/")
		sb.WriteString(strconv.Itoa(int(p.ChargeCarriers.TotalCharge())))
	}

	return sb.String()
}

func renderModifier(mod Modifier) string {
	switch mod.Kind {
	case ModifierSimple:
		return renderSimple(mod.Simple)
	case ModifierAmbiguous:
		if mod.Ambiguous != nil {
			return renderAmbiguous(*mod.Ambiguous)
		}
	case ModifierCrossLink:
		if mod.CrossLink != nil {
			name := mod.CrossLink.Name
			if mod.CrossLink.Linker != nil {
				return renderSimple(mod.CrossLink.Linker) + "#" + name
			}
			return "#" + name
		}
	}
	return ""
}

func renderAmbiguous(amb AmbiguousModifier) string {
	if amb.Modification != nil {
		return renderSimple(amb.Modification) + "#" + amb.Group
	}
	return "#" + amb.Group
}

// renderSimple mirrors modification.go's ToProforma source-prefix
// convention ("Source:value"), falling back to a bare signed mass for
// ModMass values with no named source (the teacher's "+79.966" style).
func renderSimple(m *SimpleModification) string {
	if m == nil {
		return ""
	}
	if m.Source != "" && m.Name != "" {
		return m.Source + ":" + m.Name
	}
	if m.Name != "" {
		return m.Name
	}
	switch m.Kind {
	case ModMass:
		if m.Mass >= 0 {
			return fmt.Sprintf("+%g", m.Mass)
		}
		return fmt.Sprintf("%g", m.Mass)
	case ModFormula:
		return "Formula:" + m.Formula.HillNotation()
	}
	return ""
}
