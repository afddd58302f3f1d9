package proformamass

import (
	"strconv"
	"strings"
)

// ParseHillNotation parses a Hill-notation formula string (as produced
// by MolecularFormula.HillNotation, e.g. "C6H12O6" or "13C6H12O6+1.5")
// back into a MolecularFormula, satisfying the round-trip property in
// spec.md §8 ("parse(hill(f)) = f for any formula without
// additional_mass" — formulas that do carry an AdditionalMass also
// round-trip here since the suffix is parsed back explicitly).
func ParseHillNotation(s string) (MolecularFormula, error) {
	out := NewMolecularFormula(0)
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if runes[i] == '+' || runes[i] == '-' {
			// Remaining text is the signed AdditionalMass suffix.
			mass, err := strconv.ParseFloat(string(runes[i:]), 64)
			if err != nil {
				return out, &ParseError{
					Severity: SeverityError,
					Title:    "malformed formula mass suffix",
					Detail:   "expected a signed floating-point number after the element list",
					Context:  singleLineContext(s, i),
				}
			}
			out.AdditionalMass = mass
			break
		}

		start := i
		for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
			i++
		}
		var isotope *int
		if i > start {
			n, _ := strconv.Atoi(string(runes[start:i]))
			isotope = &n
		}

		if i >= len(runes) || !isUpper(runes[i]) {
			return out, &ParseError{
				Severity: SeverityError,
				Title:    "malformed formula",
				Detail:   "expected an element symbol",
				Context:  singleLineContext(s, i),
			}
		}
		symStart := i
		i++
		for i < len(runes) && isLower(runes[i]) {
			i++
		}
		symbol := string(runes[symStart:i])

		countStart := i
		for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
			i++
		}
		count := int32(1)
		if i > countStart {
			n, _ := strconv.Atoi(string(runes[countStart:i]))
			count = int32(n)
		}

		element, ok := elementBySymbol(symbol)
		if !ok {
			return out, &ParseError{
				Severity: SeverityError,
				Title:    "unknown element symbol",
				Detail:   "'" + symbol + "' is not a recognised element symbol",
				Context:  singleLineContext(s, symStart),
			}
		}
		if !out.AddEntry(element, isotope, count) {
			return out, &ParseError{
				Severity: SeverityError,
				Title:    "element has no tabulated mass",
				Detail:   "'" + symbol + "' has no tabulated mass for the requested isotope",
				Context:  singleLineContext(s, symStart),
			}
		}
	}
	return out, nil
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

func elementBySymbol(symbol string) (Element, bool) {
	for i := range elementTable {
		if strings.EqualFold(elementTable[i].Symbol, symbol) && elementTable[i].Symbol == symbol {
			return Element(i), true
		}
	}
	return 0, false
}
