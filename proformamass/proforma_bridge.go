package proformamass

import (
	"strconv"
	"strings"
)

// sourcePrefixOntology maps the ProForma source prefixes the teacher's
// Modification/ModificationValue parser already recognises (module I's
// dispatch-by-prefix requirement) onto this module's Ontology enum.
var sourcePrefixOntology = map[string]Ontology{
	"U": Unimod, "Unimod": Unimod,
	"M": PsiMod, "PSI-MOD": PsiMod, "MOD": PsiMod,
	"R": Resid, "RESID": Resid,
	"X": XlMod, "XL-MOD": XlMod, "XLMOD": XlMod, "XL": XlMod,
	"G": GNOme, "GNO": GNOme, "GLYCAN": GNOme,
	"C": Custom,
}

// ParseToPeptidoform parses a ProForma string using the existing
// teacher-derived ProFormaParser (module I's bracket-depth single-pass
// scanner, kept as-is) and resolves the resulting text-level
// Modification values into a Peptidoform built from this module's
// SimpleModification/Modifier/Ontology substrate, per spec.md §4.5.
// custom supplies the caller's Custom-ontology records for "C:" lookups,
// per spec.md §4.4.
func ParseToPeptidoform(s string, custom []ontologyRecord) (Peptidoform, error) {
	parser := NewProFormaParser()
	baseSequence, modsByPos, globalMods, seqAmbiguities, chargeInfo, err := parser.Parse(s)
	if err != nil {
		return Peptidoform{}, newSemanticError("ProForma parse failed", err.Error(), singleLineContext(s, 0), nil)
	}

	p := Peptidoform{Sequence: make([]SequenceElement, len([]rune(baseSequence)))}
	for i, r := range []rune(baseSequence) {
		p.Sequence[i] = SequenceElement{AminoAcid: string(r)}
	}

	for posStr, mods := range modsByPos {
		pos, convErr := strconv.Atoi(posStr)
		if convErr != nil {
			continue
		}
		for _, mod := range mods {
			modifier, resolveErr := resolveModifier(mod, custom)
			if resolveErr != nil {
				return Peptidoform{}, resolveErr
			}
			switch pos {
			case -1:
				p.NTerm = append(p.NTerm, modifier)
			case -2:
				p.CTerm = append(p.CTerm, modifier)
			case -3:
				p.LabileMods = append(p.LabileMods, modifier)
			case -4:
				// Unknown-position modification: spec.md §4.5 treats this
				// as floating across the whole peptidoform rather than
				// bound to any one residue; without a combinatorial
				// placement search this bridge attaches it to every
				// residue as an ambiguous modifier sharing one group, the
				// closest approximation a per-residue model can express.
				if modifier.Kind == ModifierSimple && modifier.Simple != nil {
					for i := range p.Sequence {
						p.Sequence[i].AmbiguousModifications = append(p.Sequence[i].AmbiguousModifications, AmbiguousModifier{
							Group:        "unknown_position",
							Modification: modifier.Simple,
						})
					}
				}
			default:
				if pos >= 0 && pos < len(p.Sequence) {
					p.Sequence[pos].Modifications = append(p.Sequence[pos].Modifications, modifier)
				}
			}
		}
	}

	for _, gm := range globalMods {
		if gm.GetGlobalModType() != "isotope" {
			continue
		}
		sub, ok := parseIsotopeSubstitution(gm.GetValue())
		if ok {
			p.GlobalIsotopeMods = append(p.GlobalIsotopeMods, sub)
		}
	}

	for _, sa := range seqAmbiguities {
		if sa == nil {
			continue
		}
		p.SequenceAmbiguities = append(p.SequenceAmbiguities, ResidueAmbiguity{
			Value:    sa.GetValue(),
			Position: sa.GetPosition(),
		})
	}

	if len(chargeInfo) > 0 && chargeInfo[0] != nil {
		carrier := DefaultProtonCharge(int32(*chargeInfo[0]))
		p.ChargeCarriers = &carrier
	}

	return p, nil
}

// resolveModifier turns one teacher-level *Modification into this
// module's Modifier tagged union: bare mass, ontology-resolved
// (dispatched by source prefix per sourcePrefixOntology), ambiguous, or
// a cross-link reference. Formula/Glycan values are parsed directly
// rather than looked up, since they carry their own composition.
func resolveModifier(mod *Modification, custom []ontologyRecord) (Modifier, error) {
	if mod.IsCrosslinkRef() || mod.GetCrosslinkID() != nil {
		name := ""
		if id := mod.GetCrosslinkID(); id != nil {
			name = *id
		}
		var simple *SimpleModification
		if !mod.IsCrosslinkRef() {
			// "linker#XLn" definition form: the value before "#" names
			// the linker itself, so it resolves like any other modifier.
			// A pure "#XLn" reference (the peer occurrence) carries no
			// linker value of its own and shares the one resolved at the
			// defining occurrence, matched later by Name.
			var err error
			simple, err = resolveSimple(mod, custom)
			if err != nil {
				return Modifier{}, err
			}
		}
		return Modifier{Kind: ModifierCrossLink, CrossLink: &CrossLinkModifier{Name: name, Linker: simple}}, nil
	}
	if mod.IsAmbiguityRef() || mod.GetAmbiguityGroup() != nil {
		group := ""
		if g := mod.GetAmbiguityGroup(); g != nil {
			group = *g
		}
		var simple *SimpleModification
		if !mod.IsAmbiguityRef() {
			var err error
			simple, err = resolveSimple(mod, custom)
			if err != nil {
				return Modifier{}, err
			}
		}
		return Modifier{Kind: ModifierAmbiguous, Ambiguous: &AmbiguousModifier{Group: group, Modification: simple}}, nil
	}
	simple, err := resolveSimple(mod, custom)
	if err != nil {
		return Modifier{}, err
	}
	return Modifier{Kind: ModifierSimple, Simple: simple}, nil
}

func resolveSimple(mod *Modification, custom []ontologyRecord) (*SimpleModification, error) {
	value := mod.GetValue()
	source := mod.GetSource()

	if source != nil {
		upper := strings.ToUpper(*source)
		switch upper {
		case "FORMULA":
			f, err := ParseHillNotation(value)
			if err != nil {
				return nil, err
			}
			return &SimpleModification{Kind: ModFormula, Formula: f, Name: value, Source: "Formula"}, nil
		case "GLYCAN":
			g, err := ParseGlycan(value)
			if err != nil {
				return nil, err
			}
			return &SimpleModification{Kind: ModGlycanStructure, Glycan: g, Name: value, Source: "Glycan"}, nil
		case "OBS", "INFO":
			if mass := mod.GetMass(); mass != nil {
				return &SimpleModification{Kind: ModMass, Mass: *mass, Name: value, Source: upper}, nil
			}
		default:
			if ontology, ok := sourcePrefixOntology[*source]; ok {
				if entry, found := FindName(ontology, value, custom); found {
					return entry, nil
				}
				suggestions := ClosestNames([]Ontology{ontology}, value, 3, custom)
				names := make([]string, len(suggestions))
				for i, s := range suggestions {
					names[i] = s.Name
				}
				return nil, newSemanticError("unknown modification name", value+" not found in "+ontology.String(), nil, names)
			}
		}
	}

	if mass := mod.GetMass(); mass != nil {
		return &SimpleModification{Kind: ModMass, Mass: *mass, Name: value}, nil
	}

	return nil, newSemanticError("modification has no resolvable mass", value, nil, nil)
}

// parseIsotopeSubstitution parses a global isotope modification value
// like "13C" or "15N" into a GlobalIsotopeSubstitution.
func parseIsotopeSubstitution(value string) (GlobalIsotopeSubstitution, bool) {
	i := 0
	for i < len(value) && value[i] >= '0' && value[i] <= '9' {
		i++
	}
	if i == 0 {
		return GlobalIsotopeSubstitution{}, false
	}
	nucleons, err := strconv.Atoi(value[:i])
	if err != nil {
		return GlobalIsotopeSubstitution{}, false
	}
	symbol := value[i:]
	element, ok := elementBySymbol(symbol)
	if !ok {
		return GlobalIsotopeSubstitution{}, false
	}
	return GlobalIsotopeSubstitution{Element: element, Isotope: &nucleons}, true
}
