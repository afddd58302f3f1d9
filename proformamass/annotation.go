package proformamass

// Annotation pairs an observed peak with the theoretical Fragment it
// was matched to, per spec.md §4.8.
type Annotation struct {
	PeakIndex int
	Peak      Peak
	Fragment  Fragment
	DeltaMz   float64
}

// Annotate matches every fragment against the nearest peak within its
// tolerance window, per spec.md §4.8's "ppm-nearest-of-three-neighbors"
// policy: the three peaks nearest the theoretical m/z (the nearest
// index plus its immediate left/right neighbors) are each checked
// against the tolerance window and the closest in-window match wins,
// which is more robust near a window boundary than checking the single
// nearest index alone.
func Annotate(fragments []Fragment, spectrum Spectrum, tol Tolerance) []Annotation {
	var out []Annotation
	for _, f := range fragments {
		idx := spectrum.NearestIndex(f.Mz)
		if idx < 0 {
			continue
		}
		candidates := []int{idx}
		if idx-1 >= 0 {
			candidates = append(candidates, idx-1)
		}
		if idx+1 < len(spectrum.Peaks) {
			candidates = append(candidates, idx+1)
		}

		low, high := tol.windowAt(f.Mz)
		bestIdx := -1
		bestDelta := 0.0
		for _, c := range candidates {
			peak := spectrum.Peaks[c]
			if peak.Mz < low || peak.Mz > high {
				continue
			}
			delta := absFloat(peak.Mz - f.Mz)
			if bestIdx == -1 || delta < bestDelta {
				bestIdx = c
				bestDelta = delta
			}
		}
		if bestIdx == -1 {
			continue
		}
		out = append(out, Annotation{
			PeakIndex: bestIdx,
			Peak:      spectrum.Peaks[bestIdx],
			Fragment:  f,
			DeltaMz:   spectrum.Peaks[bestIdx].Mz - f.Mz,
		})
	}
	return out
}
