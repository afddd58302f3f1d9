package proformamass

import "testing"

func TestAnnotateMatchesWithinTolerance(t *testing.T) {
	fragments := []Fragment{{Series: IonB, Mz: 100.001}}
	spectrum := NewSpectrum([]Peak{{Mz: 100.0, Intensity: 10}, {Mz: 500.0, Intensity: 10}})
	annotations := Annotate(fragments, spectrum, Tolerance{Kind: ToleranceAbsolute, Value: 0.01})
	if len(annotations) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(annotations))
	}
	if annotations[0].PeakIndex != 0 {
		t.Fatalf("expected match against peak 0, got %d", annotations[0].PeakIndex)
	}
}

func TestAnnotateSkipsOutOfTolerance(t *testing.T) {
	fragments := []Fragment{{Series: IonB, Mz: 100.5}}
	spectrum := NewSpectrum([]Peak{{Mz: 100.0, Intensity: 10}})
	annotations := Annotate(fragments, spectrum, Tolerance{Kind: ToleranceAbsolute, Value: 0.01})
	if len(annotations) != 0 {
		t.Fatalf("expected no annotation outside tolerance, got %d", len(annotations))
	}
}

func TestAnnotatePPMTolerance(t *testing.T) {
	fragments := []Fragment{{Series: IonY, Mz: 1000.0}}
	spectrum := NewSpectrum([]Peak{{Mz: 1000.005, Intensity: 10}})
	annotations := Annotate(fragments, spectrum, Tolerance{Kind: TolerancePPM, Value: 10})
	if len(annotations) != 1 {
		t.Fatalf("expected a 5 ppm delta to match within a 10 ppm tolerance, got %d annotations", len(annotations))
	}
}
