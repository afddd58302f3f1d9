package proformamass

// Fragment is one theoretical fragment ion the generator emits: its
// series, the residue range it spans (inclusive, 0-based, within the
// originating Peptidoform.Sequence), the charge carrier applied, and
// the resulting m/z.
type Fragment struct {
	Series       IonSeries
	SequenceFrom int
	SequenceTo   int
	NeutralLoss  MolecularFormula
	Charge       MolecularCharge
	Formula      MolecularFormula
	Mz           float64
}

// seriesShift is the fixed elemental adjustment applied to the sum of
// residue formulas to obtain a given backbone ion series' neutral
// fragment, per the standard peptide fragmentation nomenclature
// (Roepstorff/Biemann). These are neutral-fragment shifts only: the
// ionizing proton comes from the charge carrier applied in
// emitCharged/Options, not from the shift itself, so a singly-charged
// b1 ion's m/z is Σresidues + protonMass, matching spec.md §8's
// worked scenarios exactly rather than one hydrogen high.
func seriesShift(series IonSeries) MolecularFormula {
	zero := NewMolecularFormula(0)
	co := formulaOf(map[Element]int32{C: 1, O: 1})
	h2 := formulaOf(map[Element]int32{H: 2})
	nh2 := formulaOf(map[Element]int32{N: 1, H: 2})
	nh3 := formulaOf(map[Element]int32{N: 1, H: 3})
	o := formulaOf(map[Element]int32{O: 1})
	water := formulaOf(map[Element]int32{H: 2, O: 1})

	switch series {
	case IonA:
		return zero.Sub(co)
	case IonB:
		return zero
	case IonC:
		return nh3
	case IonX:
		return water.Add(co).Sub(h2)
	case IonY:
		return water
	case IonZ:
		return water.Sub(nh3)
	case IonZPlus1:
		return water.Sub(nh2)
	case IonD:
		return zero.Sub(co)
	case IonV:
		return o
	case IonW:
		return water.Sub(nh2)
	}
	return zero
}

// nTerminalSeries reports whether series grows from the N-terminus
// (a/b/c/d) as opposed to the C-terminus (x/y/z/z+1/v/w).
func nTerminalSeries(series IonSeries) bool {
	switch series {
	case IonA, IonB, IonC, IonD:
		return true
	}
	return false
}

var backboneSeriesOrder = []IonSeries{IonA, IonB, IonC, IonX, IonY, IonZ, IonZPlus1, IonD, IonV, IonW}

// GenerateFragments walks p per spec.md §4.6 steps 1-6: it expands
// ambiguous placements into per-position MultiFormula prefix/suffix
// sums, generates one backbone ion per enabled series/location/residue
// combination (with its configured neutral losses), recursively
// enumerates glycan B/Y/oxonium ions for every glycan modification
// present when model.GlycanEnabled, emits a cleavage stub fragment for
// each cross-link bond, emits the unfragmented precursor ion (and its
// configured neutral-loss variants), enumerates charge carriers per
// fragment via Options, and drops anything outside model.MzRange.
func GenerateFragments(p Peptidoform, model FragmentationModel) []Fragment {
	n := len(p.Sequence)
	if n == 0 {
		return nil
	}

	prefix := make([]MultiFormula, n+1)
	suffix := make([]MultiFormula, n+1)
	prefix[0] = SingleFormula(NewMolecularFormula(0))
	suffix[n] = SingleFormula(NewMolecularFormula(0))
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i].Combine(p.Sequence[i].Formula())
	}
	for i := n - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1].Combine(p.Sequence[i].Formula())
	}

	var fragments []Fragment

	// Computed on a charge-stripped copy: emitCharged below applies its
	// own charge carriers via Options, so p.ChargeCarriers (if the
	// Peptidoform already carries a parsed "/z" charge state) must not
	// also be folded into the neutral base or the precursor would be
	// double-charged.
	neutralPeptidoform := p
	neutralPeptidoform.ChargeCarriers = nil
	precursorBase := neutralPeptidoform.Formula()
	precursorLosses := append([]MolecularFormula{NewMolecularFormula(0)}, model.PrecursorLosses...)
	for _, base := range precursorBase {
		for _, loss := range precursorLosses {
			fragments = append(fragments, emitCharged(IonPrecursor, 0, n-1, loss, base.Sub(loss), model)...)
		}
	}

	for _, series := range backboneSeriesOrder {
		cfg, ok := model.Series[series]
		if !ok || !cfg.Enabled {
			continue
		}
		shift := seriesShift(series)
		for idx := 0; idx < n; idx++ {
			if !cfg.Location.allows(idx) {
				continue
			}
			var sideFormulas MultiFormula
			var from, to int
			if nTerminalSeries(series) {
				sideFormulas = prefix[idx+1]
				from, to = 0, idx
			} else {
				sideFormulas = suffix[n-idx-1]
				from, to = n-idx-1, n-1
			}
			losses := append([]MolecularFormula{NewMolecularFormula(0)}, cfg.NeutralLosses...)
			for _, base := range sideFormulas {
				neutral := base.Add(shift)
				for _, loss := range losses {
					withLoss := neutral.Sub(loss)
					fragments = append(fragments, emitCharged(series, from, to, loss, withLoss, model)...)
				}
			}
		}
	}

	if model.GlycanEnabled {
		fragments = append(fragments, generateGlycanFragments(p, model)...)
	}

	fragments = append(fragments, generateCrossLinkStubs(p, model)...)
	fragments = append(fragments, generateImmoniumAndDiagnostic(p, model)...)

	filtered := fragments[:0]
	for _, f := range fragments {
		if model.MzRange.contains(f.Mz) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// chargeRangeFor selects which of the model's three configured charge
// ranges (peptide backbone, oxonium, or everything else) applies to a
// given ion series, per spec.md §4.6/§6's charge_range.{peptide,
// oxonium,other}. Backbone series go through PeptideChargeRange,
// oxonium ions through OxoniumChargeRange, and immonium/diagnostic/
// cross-link-stub/glycan-B/glycan-Y/precursor ions all fall back to
// OtherChargeRange.
func chargeRangeFor(series IonSeries, model FragmentationModel) [2]int32 {
	switch series {
	case IonA, IonB, IonC, IonX, IonY, IonZ, IonZPlus1, IonD, IonV, IonW:
		return model.PeptideChargeRange
	case IonOxonium:
		return model.OxoniumChargeRange
	default:
		return model.OtherChargeRange
	}
}

func emitCharged(series IonSeries, from, to int, loss MolecularFormula, neutral MolecularFormula, model FragmentationModel) []Fragment {
	chargeRange := chargeRangeFor(series, model)
	var out []Fragment
	for z := chargeRange[0]; z <= chargeRange[1]; z++ {
		if z <= 0 {
			continue
		}
		for _, mc := range Options(model.AdductSpecies, z) {
			withCharge := neutral.Add(mc.Formula())
			mz := model.MassMode.massOf(withCharge) / float64(z)
			out = append(out, Fragment{
				Series:       series,
				SequenceFrom: from,
				SequenceTo:   to,
				NeutralLoss:  loss,
				Charge:       mc,
				Formula:      withCharge,
				Mz:           mz,
			})
		}
	}
	return out
}

// generateGlycanFragments recursively walks every GlycanStructure
// modification's rose tree, emitting every DiagnosticIons entry
// (spec.md §4.2) of each monosaccharide node as an oxonium ion and one
// Y ion for the whole structure, plus one B ion per top-level branch
// retained after cutting the branch list down to
// model.GlycanMaxBranches (-1 unbounded, per WithGlycans's convention).
// Y ions of partial subtrees and B ions of deeper cuts are not
// generated.
func generateGlycanFragments(p Peptidoform, model FragmentationModel) []Fragment {
	var out []Fragment
	for idx, se := range p.Sequence {
		for _, mod := range se.Modifications {
			if mod.Kind != ModifierSimple || mod.Simple == nil || mod.Simple.Kind != ModGlycanStructure {
				continue
			}
			structure := mod.Simple.Glycan
			structure.Walk(func(node GlycanStructure) {
				for _, ion := range DiagnosticIons(node.Sugar) {
					out = append(out, emitCharged(IonOxonium, idx, idx, NewMolecularFormula(0), ion.Formula, model)...)
				}
			})
			yFormula := structure.Formula()
			out = append(out, emitCharged(IonGlycanY, idx, idx, NewMolecularFormula(0), yFormula, model)...)

			branches := structure.Branches
			if limit := model.GlycanMaxBranches; limit >= 0 && limit < len(branches) {
				branches = branches[:limit]
			}
			for _, branch := range branches {
				bFormula := branch.Formula()
				out = append(out, emitCharged(IonGlycanB, idx, idx, NewMolecularFormula(0), bFormula, model)...)
			}
		}
	}
	return out
}

// generateCrossLinkStubs emits one stub fragment per cross-link bond:
// the linker's whole ComputeFormula() added to the residue's own
// formula. The LeftStub/RightStub formulas of the linker's
// specificities and the bond's CrossLinkSide are not used.
func generateCrossLinkStubs(p Peptidoform, model FragmentationModel) []Fragment {
	var out []Fragment
	for idx, se := range p.Sequence {
		for _, mod := range se.Modifications {
			if mod.Kind != ModifierCrossLink || mod.CrossLink == nil || mod.CrossLink.Linker == nil {
				continue
			}
			base, ok := residueFormula(se.AminoAcid)
			if !ok {
				continue
			}
			stub := mod.CrossLink.Linker.ComputeFormula()
			combined := base.Add(stub)
			out = append(out, emitCharged(IonDiagnostic, idx, idx, NewMolecularFormula(0), combined, model)...)
		}
	}
	return out
}

// immoniumShift converts a residue formula into its immonium ion
// (residue - CO + H), the standard low-mass diagnostic series.
func immoniumShift() MolecularFormula {
	co := formulaOf(map[Element]int32{C: 1, O: 1})
	h := formulaOf(map[Element]int32{H: 1})
	return h.Sub(co)
}

func generateImmoniumAndDiagnostic(p Peptidoform, model FragmentationModel) []Fragment {
	shift := immoniumShift()
	var out []Fragment
	for idx, se := range p.Sequence {
		base, ok := residueFormula(se.AminoAcid)
		if !ok {
			continue
		}
		neutral := base.Add(shift)
		out = append(out, emitCharged(IonImmonium, idx, idx, NewMolecularFormula(0), neutral, model)...)

		for _, mod := range se.Modifications {
			if mod.Kind != ModifierSimple || mod.Simple == nil || mod.Simple.Kind != ModDatabase {
				continue
			}
			for _, spec := range mod.Simple.Specificities {
				for _, ion := range spec.DiagnosticIons {
					out = append(out, emitCharged(IonDiagnostic, idx, idx, NewMolecularFormula(0), ion, model)...)
				}
			}
		}
	}
	return out
}
