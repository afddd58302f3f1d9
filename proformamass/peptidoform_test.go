package proformamass

import (
	"math"
	"testing"
)

func TestPeptidoformFormulaSimple(t *testing.T) {
	p := Peptidoform{
		Sequence: []SequenceElement{
			{AminoAcid: "P"},
			{AminoAcid: "E"},
			{AminoAcid: "P"},
		},
	}
	mf := p.Formula()
	if len(mf) != 1 {
		t.Fatalf("expected a single resolved formula, got %d alternatives", len(mf))
	}
	mass := mf[0].MonoisotopicMass()
	if mass <= 0 {
		t.Fatalf("expected a positive mass, got %v", mass)
	}
}

func TestPeptidoformFormulaWithSimpleModification(t *testing.T) {
	phospho := &SimpleModification{Kind: ModMass, Mass: 79.966331, Name: "Phospho"}
	p := Peptidoform{
		Sequence: []SequenceElement{
			{AminoAcid: "S", Modifications: []Modifier{{Kind: ModifierSimple, Simple: phospho}}},
			{AminoAcid: "E"},
		},
	}
	withMod := p.Formula()[0].MonoisotopicMass()

	unmod := Peptidoform{Sequence: []SequenceElement{{AminoAcid: "S"}, {AminoAcid: "E"}}}
	base := unmod.Formula()[0].MonoisotopicMass()

	if math.Abs((withMod-base)-79.966331) > 1e-6 {
		t.Fatalf("expected modification to add 79.966331 Da, got delta %v", withMod-base)
	}
}

func TestPeptidoformFormulaAmbiguousModificationFansOut(t *testing.T) {
	mod := &SimpleModification{Kind: ModMass, Mass: 15.994915, Name: "Oxidation"}
	p := Peptidoform{
		Sequence: []SequenceElement{
			{
				AminoAcid: "M",
				AmbiguousModifications: []AmbiguousModifier{
					{Group: "g1", Modification: mod},
				},
			},
		},
	}
	mf := p.Formula()
	if len(mf) != 2 {
		t.Fatalf("expected 2 alternatives (placed/not placed), got %d", len(mf))
	}
}

func TestPeptidoformCrossLinkNotDoubleCounted(t *testing.T) {
	linker := &SimpleModification{Kind: ModMass, Mass: 138.06808, Name: "DSS"}
	p := Peptidoform{
		Sequence: []SequenceElement{
			{
				AminoAcid: "K",
				Modifications: []Modifier{
					{Kind: ModifierCrossLink, CrossLink: &CrossLinkModifier{Linker: linker, Name: "XL1"}},
				},
			},
			{
				AminoAcid: "K",
				Modifications: []Modifier{
					{Kind: ModifierCrossLink, CrossLink: &CrossLinkModifier{Linker: linker, Name: "XL1"}},
				},
			},
		},
	}
	withLinker := p.Formula()[0].MonoisotopicMass()

	noLinker := Peptidoform{Sequence: []SequenceElement{{AminoAcid: "K"}, {AminoAcid: "K"}}}
	base := noLinker.Formula()[0].MonoisotopicMass()

	if math.Abs((withLinker-base)-138.06808) > 1e-6 {
		t.Fatalf("expected linker mass counted exactly once (138.06808 Da), got delta %v", withLinker-base)
	}
}

func TestPeptidoformDowncast(t *testing.T) {
	p := Peptidoform{
		Sequence: []SequenceElement{{AminoAcid: "A"}, {AminoAcid: "B"}},
		Complexity: Linked,
	}
	if _, err := p.Downcast(UnAmbiguous); err == nil {
		t.Fatalf("expected downcast to UnAmbiguous to fail for a sequence containing B")
	}
	if _, err := p.Downcast(SemiAmbiguous); err != nil {
		t.Fatalf("expected downcast to SemiAmbiguous to succeed: %v", err)
	}
}

func TestCompoundPeptidoformIonChimericFormula(t *testing.T) {
	a := PeptidoformIon{Peptidoform: Peptidoform{Sequence: []SequenceElement{{AminoAcid: "A"}}}}
	b := PeptidoformIon{Peptidoform: Peptidoform{Sequence: []SequenceElement{{AminoAcid: "G"}}}}
	c := CompoundPeptidoformIon{Peptides: []PeptidoformIon{a, b}}
	mf := c.Formula()
	if len(mf) != 1 {
		t.Fatalf("expected single combined alternative, got %d", len(mf))
	}
}
