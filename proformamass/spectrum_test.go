package proformamass

import "testing"

func TestNewSpectrumSorts(t *testing.T) {
	s := NewSpectrum([]Peak{{Mz: 300}, {Mz: 100}, {Mz: 200}})
	for i := 1; i < len(s.Peaks); i++ {
		if s.Peaks[i-1].Mz > s.Peaks[i].Mz {
			t.Fatalf("spectrum not sorted: %+v", s.Peaks)
		}
	}
}

func TestBinarySearchRange(t *testing.T) {
	s := NewSpectrum([]Peak{{Mz: 100}, {Mz: 150}, {Mz: 200}, {Mz: 250}})
	lo, hi := s.BinarySearch(140, 210)
	if lo != 1 || hi != 3 {
		t.Fatalf("expected range [1,3), got [%d,%d)", lo, hi)
	}
}

func TestNearestIndex(t *testing.T) {
	s := NewSpectrum([]Peak{{Mz: 100}, {Mz: 200}, {Mz: 300}})
	if idx := s.NearestIndex(190); idx != 1 {
		t.Fatalf("expected nearest index 1, got %d", idx)
	}
	if idx := s.NearestIndex(10000); idx != 2 {
		t.Fatalf("expected nearest index 2 for an out-of-range query, got %d", idx)
	}
}

func TestTopXFilterKeepsMostIntensePerWindow(t *testing.T) {
	s := NewSpectrum([]Peak{
		{Mz: 100, Intensity: 10},
		{Mz: 101, Intensity: 50},
		{Mz: 102, Intensity: 5},
		{Mz: 200, Intensity: 1},
	})
	out := TopXFilter(s, 5, 1)
	if len(out.Peaks) != 2 {
		t.Fatalf("expected 2 peaks (one per window), got %d", len(out.Peaks))
	}
	if out.Peaks[0].Intensity != 50 {
		t.Fatalf("expected the most intense peak in the first window to survive, got %+v", out.Peaks[0])
	}
}

func TestAbsoluteAndRelativeNoiseFilters(t *testing.T) {
	s := NewSpectrum([]Peak{{Mz: 1, Intensity: 1}, {Mz: 2, Intensity: 100}})
	if got := AbsoluteNoiseFilter(s, 50); len(got.Peaks) != 1 {
		t.Fatalf("expected 1 peak above threshold 50, got %d", len(got.Peaks))
	}
	if got := RelativeNoiseFilter(s, 0.5); len(got.Peaks) != 1 {
		t.Fatalf("expected 1 peak above 50%% of max intensity, got %d", len(got.Peaks))
	}
}
