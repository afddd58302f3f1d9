package proformamass

import "testing"

func plainPeptidoform() Peptidoform {
	return Peptidoform{Sequence: []SequenceElement{{AminoAcid: "P"}, {AminoAcid: "E"}, {AminoAcid: "P"}}}
}

func TestDowncastUpcastIsFree(t *testing.T) {
	p := plainPeptidoform()
	p.Complexity = UnAmbiguous
	out, err := p.Downcast(Linked)
	if err != nil {
		t.Fatalf("unexpected error upcasting: %v", err)
	}
	if out.Complexity != Linked {
		t.Fatalf("expected Complexity Linked after upcast, got %v", out.Complexity)
	}
}

func TestDowncastRejectsCrossLinks(t *testing.T) {
	p := plainPeptidoform()
	p.CrossLinks = []PeptidoformCrossLink{{SequenceIndex: 0, Name: "XL1"}}
	if _, err := p.Downcast(Linear); err == nil {
		t.Fatalf("expected downcast to Linear to fail with a cross-link present")
	}
}

func TestDowncastRejectsLabileMods(t *testing.T) {
	p := plainPeptidoform()
	p.LabileMods = []Modifier{{Kind: ModifierSimple, Simple: &SimpleModification{Kind: ModMass, Mass: 1}}}
	if _, err := p.Downcast(SimpleLinear); err == nil {
		t.Fatalf("expected downcast to SimpleLinear to fail with a labile modification present")
	}
}

func TestDowncastRejectsNonProtonCharge(t *testing.T) {
	p := plainPeptidoform()
	carrier := MolecularCharge{{Count: 1, Formula: formulaOf(map[Element]int32{Na: 1})}}
	p.ChargeCarriers = &carrier
	if _, err := p.Downcast(SimpleLinear); err == nil {
		t.Fatalf("expected downcast to SimpleLinear to fail with a non-proton charge carrier")
	}
}

func TestDowncastRejectsAmbiguousResidues(t *testing.T) {
	p := plainPeptidoform()
	p.SequenceAmbiguities = []ResidueAmbiguity{{Value: "AG", Position: 1}}
	if _, err := p.Downcast(SemiAmbiguous); err == nil {
		t.Fatalf("expected downcast to SemiAmbiguous to fail with a sequence ambiguity present")
	}
}

func TestDowncastRejectsAmbiguousModifications(t *testing.T) {
	p := plainPeptidoform()
	p.Sequence[0].AmbiguousModifications = []AmbiguousModifier{{Group: "g1"}}
	if _, err := p.Downcast(SemiAmbiguous); err == nil {
		t.Fatalf("expected downcast to SemiAmbiguous to fail with an ambiguous modification present")
	}
}

func TestDowncastRejectsAmbiguousAminoAcidCodes(t *testing.T) {
	p := plainPeptidoform()
	p.Sequence[1].AminoAcid = "Z"
	if _, err := p.Downcast(UnAmbiguous); err == nil {
		t.Fatalf("expected downcast to UnAmbiguous to fail with a Z residue present")
	}
}

func TestDowncastSucceedsWhenNoDisqualifyingFeatures(t *testing.T) {
	p := plainPeptidoform()
	out, err := p.Downcast(UnAmbiguous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Complexity != UnAmbiguous {
		t.Fatalf("expected Complexity UnAmbiguous, got %v", out.Complexity)
	}
}
