package proformamass

// ChargeCarrier is one adduct kind contributing to a MolecularCharge:
// a count of ions of a given elemental Formula, per spec.md §3/§4.9
// (e.g. 2 protons, or 1 sodium + 1 proton).
type ChargeCarrier struct {
	Count   int32
	Formula MolecularFormula
}

// MolecularCharge is an ordered list of charge carriers, per spec.md
// §4.9. The net charge is the sum of each carrier's Count (protons and
// most common adducts carry +1 per ion; Formula only supplies the mass
// contribution, not the sign, matching the teacher's convention of
// keeping sign bookkeeping in the caller rather than in the formula
// algebra itself).
type MolecularCharge []ChargeCarrier

// protonFormula is a bare proton: one hydrogen atom missing its
// electron, approximated here as hydrogen-1 minus an electron mass via
// AdditionalMass, matching formula.go's additive-offset convention for
// non-elemental corrections.
func protonFormula() MolecularFormula {
	f := formulaOf(map[Element]int32{H: 1})
	f.AdditionalMass -= electronMass
	return f
}

const electronMass = 0.00054858

// DefaultProtonCharge builds the all-protons MolecularCharge spec.md
// §4.9 calls the default: target protons, Count=target.
func DefaultProtonCharge(target int32) MolecularCharge {
	if target == 0 {
		return nil
	}
	return MolecularCharge{{Count: target, Formula: protonFormula()}}
}

// isProtonsOnly reports whether every carrier is a bare proton, the
// condition complexity.go's Downcast checks before allowing SimpleLinear
// or stricter.
func (mc MolecularCharge) isProtonsOnly() bool {
	proton := protonFormula()
	for _, c := range mc {
		if !c.Formula.Equal(proton) {
			return false
		}
	}
	return true
}

// TotalCharge sums every carrier's Count.
func (mc MolecularCharge) TotalCharge() int32 {
	var total int32
	for _, c := range mc {
		total += c.Count
	}
	return total
}

// Formula returns the combined MolecularFormula contribution of every
// carrier (Count copies of each carrier's Formula, added together).
func (mc MolecularCharge) Formula() MolecularFormula {
	out := NewMolecularFormula(0)
	for _, c := range mc {
		out = out.Add(c.Formula.Mul(c.Count))
	}
	return out
}

// chargeOption is one allowed adduct species and its maximum count,
// the search space Options explores.
type chargeOption struct {
	name     string
	formula  MolecularFormula
	maxCount int32
}

// StandardAdducts are the carrier species Options searches by default:
// protons, sodium, potassium, and ammonium, matching the common adduct
// set surveyed by mass-spectrometry tools in the retrieval pack's
// chemistry helpers (ChrisMcGann-DBKey's charge-carrier table).
func StandardAdducts() []chargeOption {
	return []chargeOption{
		{name: "proton", formula: protonFormula(), maxCount: 6},
		{name: "sodium", formula: adductFormula(Na, 1), maxCount: 3},
		{name: "potassium", formula: adductFormula(K, 1), maxCount: 3},
		{name: "ammonium", formula: ammoniumFormula(), maxCount: 3},
	}
}

func adductFormula(e Element, hydrogenDeficit int32) MolecularFormula {
	f := formulaOf(map[Element]int32{e: 1})
	f.AdditionalMass -= electronMass
	return f
}

func ammoniumFormula() MolecularFormula {
	f := formulaOf(map[Element]int32{N: 1, H: 4})
	f.AdditionalMass -= electronMass
	return f
}

// Options enumerates every combination of the given adduct species
// whose total count equals targetCharge, via the depth-first
// combination search with pruning and per-target memoization spec.md
// §4.9 calls for: branches where the remaining slots cannot possibly
// reach targetCharge (even using every option's max count) are cut
// immediately, and the memo key is (option index, remaining charge) so
// repeated subproblems across branches are not re-explored.
func Options(species []chargeOption, targetCharge int32) []MolecularCharge {
	if targetCharge <= 0 || len(species) == 0 {
		return nil
	}
	type memoKey struct {
		idx       int
		remaining int32
	}
	memo := map[memoKey][][]int32{}

	maxSuffix := make([]int32, len(species)+1)
	for i := len(species) - 1; i >= 0; i-- {
		maxSuffix[i] = maxSuffix[i+1] + species[i].maxCount
	}

	var search func(idx int, remaining int32) [][]int32
	search = func(idx int, remaining int32) [][]int32 {
		if remaining == 0 {
			return [][]int32{{}}
		}
		if idx >= len(species) || remaining < 0 || remaining > maxSuffix[idx] {
			return nil
		}
		key := memoKey{idx, remaining}
		if cached, ok := memo[key]; ok {
			return cached
		}
		var results [][]int32
		for count := int32(0); count <= species[idx].maxCount; count++ {
			for _, tail := range search(idx+1, remaining-count) {
				combo := append([]int32{count}, tail...)
				results = append(results, combo)
			}
		}
		memo[key] = results
		return results
	}

	combos := search(0, targetCharge)
	out := make([]MolecularCharge, 0, len(combos))
	for _, combo := range combos {
		var mc MolecularCharge
		for i, count := range combo {
			if count > 0 {
				mc = append(mc, ChargeCarrier{Count: count, Formula: species[i].formula})
			}
		}
		out = append(out, mc)
	}
	return out
}
