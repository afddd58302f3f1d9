package proformamass

import (
	"sort"

	"golang.org/x/exp/slices"
)

// Peak is one observed centroid: an m/z and an intensity, per spec.md
// §4.8. Grounded on ChrisMcGann-DBKey/pkg/core/spectrum.go's Peak
// struct and its sort.Slice-based ordering convention.
type Peak struct {
	Mz        float64
	Intensity float64
}

// Spectrum is a Peak list this module's invariant requires to stay
// sorted by Mz ascending (enforced by NewSpectrum and every mutator
// here; BinarySearch assumes it and is not re-validated per call for
// the same reason the teacher's ArePeaksSorted check is a precondition
// assertion, not a per-lookup cost).
type Spectrum struct {
	Peaks []Peak
}

// NewSpectrum sorts peaks by Mz and returns the resulting Spectrum.
func NewSpectrum(peaks []Peak) Spectrum {
	sorted := make([]Peak, len(peaks))
	copy(sorted, peaks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Mz < sorted[j].Mz })
	return Spectrum{Peaks: sorted}
}

// BinarySearch returns the index range [lo, hi) of peaks whose Mz
// falls within [low, high], per spec.md §4.8.
func (s Spectrum) BinarySearch(low, high float64) (lo, hi int) {
	lo = sort.Search(len(s.Peaks), func(i int) bool { return s.Peaks[i].Mz >= low })
	hi = sort.Search(len(s.Peaks), func(i int) bool { return s.Peaks[i].Mz > high })
	return lo, hi
}

// NearestIndex returns the index of the peak whose Mz is closest to
// target, or -1 if the spectrum is empty. Used by annotation.go's
// ppm-nearest-of-three-neighbors matching.
func (s Spectrum) NearestIndex(target float64) int {
	if len(s.Peaks) == 0 {
		return -1
	}
	idx, found := slices.BinarySearchFunc(s.Peaks, Peak{Mz: target}, func(a, b Peak) int {
		switch {
		case a.Mz < b.Mz:
			return -1
		case a.Mz > b.Mz:
			return 1
		default:
			return 0
		}
	})
	if found {
		return idx
	}
	best := idx
	if best >= len(s.Peaks) {
		best = len(s.Peaks) - 1
	}
	if best > 0 {
		if absFloat(s.Peaks[best-1].Mz-target) < absFloat(s.Peaks[best].Mz-target) {
			best = best - 1
		}
	}
	return best
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// AbsoluteNoiseFilter drops every peak with intensity below threshold.
func AbsoluteNoiseFilter(s Spectrum, threshold float64) Spectrum {
	var out []Peak
	for _, p := range s.Peaks {
		if p.Intensity >= threshold {
			out = append(out, p)
		}
	}
	return Spectrum{Peaks: out}
}

// RelativeNoiseFilter drops every peak with intensity below fraction *
// the spectrum's maximum intensity.
func RelativeNoiseFilter(s Spectrum, fraction float64) Spectrum {
	var max float64
	for _, p := range s.Peaks {
		if p.Intensity > max {
			max = p.Intensity
		}
	}
	return AbsoluteNoiseFilter(s, max*fraction)
}

// TopXFilter keeps, within each consecutive window of windowWidth m/z
// units, only the x most intense peaks. This is the linear-window
// variant spec.md §9 Open Question (a) resolves in favor of; the
// logarithmic-window variant is explicitly not implemented (see
// DESIGN.md).
func TopXFilter(s Spectrum, windowWidth float64, x int) Spectrum {
	if len(s.Peaks) == 0 || x <= 0 {
		return Spectrum{}
	}
	var out []Peak
	start := 0
	for start < len(s.Peaks) {
		windowLow := s.Peaks[start].Mz
		end := start
		for end < len(s.Peaks) && s.Peaks[end].Mz < windowLow+windowWidth {
			end++
		}
		window := append([]Peak(nil), s.Peaks[start:end]...)
		sort.Slice(window, func(i, j int) bool { return window[i].Intensity > window[j].Intensity })
		if len(window) > x {
			window = window[:x]
		}
		out = append(out, window...)
		start = end
	}
	return NewSpectrum(out)
}
