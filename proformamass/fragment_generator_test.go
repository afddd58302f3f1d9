package proformamass

import "testing"

func TestGenerateFragmentsBackboneSeries(t *testing.T) {
	p := Peptidoform{
		Sequence: []SequenceElement{
			{AminoAcid: "P"},
			{AminoAcid: "E"},
			{AminoAcid: "P"},
			{AminoAcid: "T"},
			{AminoAcid: "I"},
			{AminoAcid: "D"},
			{AminoAcid: "E"},
		},
	}
	model := NewFragmentationModel(WithMzRange(0, 10000))
	fragments := GenerateFragments(p, model)
	if len(fragments) == 0 {
		t.Fatalf("expected at least one fragment")
	}
	sawB, sawY := false, false
	for _, f := range fragments {
		switch f.Series {
		case IonB:
			sawB = true
		case IonY:
			sawY = true
		}
		if f.Mz <= 0 {
			t.Fatalf("fragment %+v has non-positive m/z", f)
		}
	}
	if !sawB || !sawY {
		t.Fatalf("expected both b and y ions by default, sawB=%v sawY=%v", sawB, sawY)
	}
}

func TestGenerateFragmentsMzRangeFilters(t *testing.T) {
	p := Peptidoform{Sequence: []SequenceElement{{AminoAcid: "P"}, {AminoAcid: "E"}, {AminoAcid: "P"}}}
	model := NewFragmentationModel(WithMzRange(0, 1))
	fragments := GenerateFragments(p, model)
	if len(fragments) != 0 {
		t.Fatalf("expected no fragments within a 0-1 m/z window, got %d", len(fragments))
	}
}

func TestSeriesShiftDoesNotDoubleCountIonizingHydrogen(t *testing.T) {
	proton := protonFormula().MonoisotopicMass()

	residue, ok := residueFormula("A")
	if !ok {
		t.Fatalf("expected alanine to resolve a residue formula")
	}
	bNeutral := residue.Add(seriesShift(IonB)).MonoisotopicMass()
	bMz := bNeutral + proton
	if got := residue.MonoisotopicMass() + proton; absFloat(bMz-got) > 1e-9 {
		t.Fatalf("expected b1 m/z to equal residue mass + one proton (%v), got %v", got, bMz)
	}

	aNeutral := residue.Add(seriesShift(IonA)).MonoisotopicMass()
	co := formulaOf(map[Element]int32{C: 1, O: 1}).MonoisotopicMass()
	if absFloat((bNeutral-aNeutral)-co) > 1e-9 {
		t.Fatalf("expected b - a to equal one CO (%v), got %v", co, bNeutral-aNeutral)
	}

	cNeutral := residue.Add(seriesShift(IonC)).MonoisotopicMass()
	nh3 := formulaOf(map[Element]int32{N: 1, H: 3}).MonoisotopicMass()
	if absFloat((cNeutral-bNeutral)-nh3) > 1e-9 {
		t.Fatalf("expected c - b to equal one NH3 (%v), got %v", nh3, cNeutral-bNeutral)
	}

	yNeutral := residue.Add(seriesShift(IonY)).MonoisotopicMass()
	water := formulaOf(map[Element]int32{H: 2, O: 1}).MonoisotopicMass()
	if absFloat(yNeutral-(residue.MonoisotopicMass()+water)) > 1e-9 {
		t.Fatalf("expected y neutral to equal residue + water, got %v", yNeutral)
	}

	zNeutral := residue.Add(seriesShift(IonZ)).MonoisotopicMass()
	if absFloat((yNeutral-zNeutral)-nh3) > 1e-9 {
		t.Fatalf("expected y - z to equal one NH3 (%v), got %v", nh3, yNeutral-zNeutral)
	}

	zPlus1Neutral := residue.Add(seriesShift(IonZPlus1)).MonoisotopicMass()
	h := formulaOf(map[Element]int32{H: 1}).MonoisotopicMass()
	if absFloat((zPlus1Neutral-zNeutral)-h) > 1e-9 {
		t.Fatalf("expected z+1 - z to equal one H (%v), got %v", h, zPlus1Neutral-zNeutral)
	}

	xNeutral := residue.Add(seriesShift(IonX)).MonoisotopicMass()
	h2 := formulaOf(map[Element]int32{H: 2}).MonoisotopicMass()
	if absFloat((xNeutral-yNeutral)-(co-h2)) > 1e-9 {
		t.Fatalf("expected x - y to equal CO - H2 (%v), got %v", co-h2, xNeutral-yNeutral)
	}
}

func TestGenerateFragmentsEmitsPrecursor(t *testing.T) {
	p := Peptidoform{Sequence: []SequenceElement{{AminoAcid: "P"}, {AminoAcid: "E"}, {AminoAcid: "P"}}}
	model := NewFragmentationModel(WithMzRange(0, 10000))
	fragments := GenerateFragments(p, model)
	found := false
	for _, f := range fragments {
		if f.Series == IonPrecursor {
			found = true
			if f.SequenceFrom != 0 || f.SequenceTo != len(p.Sequence)-1 {
				t.Fatalf("expected precursor to span the whole sequence, got [%d,%d]", f.SequenceFrom, f.SequenceTo)
			}
		}
	}
	if !found {
		t.Fatalf("expected GenerateFragments to emit a precursor ion")
	}
}

func TestGenerateFragmentsPrecursorLossVariant(t *testing.T) {
	loss := formulaOf(map[Element]int32{H: 2, O: 1})
	p := Peptidoform{Sequence: []SequenceElement{{AminoAcid: "P"}, {AminoAcid: "E"}, {AminoAcid: "P"}}}
	model := NewFragmentationModel(WithMzRange(0, 10000), WithPrecursorLosses(loss))
	fragments := GenerateFragments(p, model)
	count := 0
	for _, f := range fragments {
		if f.Series == IonPrecursor {
			count++
		}
	}
	if count < 2 {
		t.Fatalf("expected at least 2 precursor variants (no-loss + water-loss), got %d", count)
	}
}

func TestGenerateFragmentsUsesOtherChargeRangeForImmonium(t *testing.T) {
	p := Peptidoform{Sequence: []SequenceElement{{AminoAcid: "P"}, {AminoAcid: "E"}, {AminoAcid: "P"}}}
	model := NewFragmentationModel(
		WithMzRange(0, 10000),
		WithChargeRanges([2]int32{1, 1}, [2]int32{1, 1}, [2]int32{3, 3}),
	)
	fragments := GenerateFragments(p, model)
	found := false
	for _, f := range fragments {
		if f.Series == IonImmonium {
			found = true
			if f.Charge.TotalCharge() != 3 {
				t.Fatalf("expected immonium ion to use OtherChargeRange (charge 3), got charge %d", f.Charge.TotalCharge())
			}
		}
	}
	if !found {
		t.Fatalf("expected at least one immonium fragment")
	}
}

func TestGenerateFragmentsGlycanMaxBranchesBounds(t *testing.T) {
	leaf := GlycanStructure{Sugar: MonoSaccharide{Base: Hexose}}
	structure := GlycanStructure{
		Sugar:    MonoSaccharide{Base: HexNAcSugar},
		Branches: []GlycanStructure{leaf, leaf, leaf},
	}
	p := Peptidoform{
		Sequence: []SequenceElement{
			{
				AminoAcid: "N",
				Modifications: []Modifier{
					{Kind: ModifierSimple, Simple: &SimpleModification{Kind: ModGlycanStructure, Glycan: structure}},
				},
			},
		},
	}
	model := NewFragmentationModel(WithMzRange(0, 10000), WithGlycans(true, 1))
	fragments := GenerateFragments(p, model)
	bCount := 0
	for _, f := range fragments {
		if f.Series == IonGlycanB {
			bCount++
		}
	}
	if bCount == 0 {
		t.Fatalf("expected at least one glycan B ion")
	}
	chargesPerBranch := 0
	for z := model.OtherChargeRange[0]; z <= model.OtherChargeRange[1]; z++ {
		chargesPerBranch += len(Options(model.AdductSpecies, z))
	}
	if bCount > chargesPerBranch {
		t.Fatalf("expected GlycanMaxBranches=1 to cap glycan B ions to one branch's worth (%d), got %d", chargesPerBranch, bCount)
	}
}

func TestGenerateFragmentsCrossLinkStub(t *testing.T) {
	linker := &SimpleModification{Kind: ModMass, Mass: 138.06808, Name: "DSS"}
	p := Peptidoform{
		Sequence: []SequenceElement{
			{
				AminoAcid: "K",
				Modifications: []Modifier{
					{Kind: ModifierCrossLink, CrossLink: &CrossLinkModifier{Linker: linker, Name: "XL1"}},
				},
			},
		},
	}
	model := NewFragmentationModel(WithMzRange(0, 10000))
	fragments := GenerateFragments(p, model)
	found := false
	for _, f := range fragments {
		if f.Series == IonDiagnostic {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cross-link stub fragment in the diagnostic series")
	}
}
