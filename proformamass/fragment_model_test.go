package proformamass

import "testing"

func TestNewFragmentationModelDefaults(t *testing.T) {
	m := NewFragmentationModel()
	if !m.Series[IonB].Enabled || !m.Series[IonY].Enabled {
		t.Fatalf("expected b and y ions enabled by default")
	}
	if m.Series[IonA].Enabled {
		t.Fatalf("expected a ions disabled by default")
	}
	if m.MassMode != MassModeMonoisotopic {
		t.Fatalf("expected monoisotopic mass mode by default")
	}
}

func TestWithSeriesOverridesDefault(t *testing.T) {
	m := NewFragmentationModel(WithSeries(IonA, SeriesConfig{Enabled: true, Location: SeriesLocation{MaxIndex: -1}}))
	if !m.Series[IonA].Enabled {
		t.Fatalf("expected WithSeries to enable a ions")
	}
}

func TestToleranceWindowAtPPM(t *testing.T) {
	tol := Tolerance{Kind: TolerancePPM, Value: 20}
	low, high := tol.windowAt(1000)
	if low >= 1000 || high <= 1000 {
		t.Fatalf("expected window to straddle 1000, got [%v, %v]", low, high)
	}
}
