package proformamass

import "testing"

func TestToProFormaPlainSequence(t *testing.T) {
	p, err := ParseToPeptidoform("PEPTIDE", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.ToProForma(); got != "PEPTIDE" {
		t.Fatalf("expected round-trip PEPTIDE, got %q", got)
	}
}

func TestToProFormaChargeState(t *testing.T) {
	p, err := ParseToPeptidoform("PEPTIDE/2", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.ToProForma(); got != "PEPTIDE/2" {
		t.Fatalf("expected PEPTIDE/2, got %q", got)
	}
}

func TestToProFormaBareMassModification(t *testing.T) {
	p, err := ParseToPeptidoform("ELVIS[+79.966331]K", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := p.ToProForma()
	if got == "" {
		t.Fatalf("expected non-empty rendering")
	}
}
