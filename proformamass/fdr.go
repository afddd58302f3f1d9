package proformamass

import "gonum.org/v1/gonum/stat"

// FDREstimate is one peptidoform's permutation-based false discovery
// estimate, per spec.md §4.8: the real annotation count at δ=0 versus
// the mean and standard deviation of annotation counts across 51
// decoy shifts (every integer δ ∈ {-25..+25} offset by π, so that no
// shift is a whole number of daltons and none lines up with isotope
// spacing).
type FDREstimate struct {
	RealCount    int
	DecoyMean    float64
	DecoyStdDev  float64
	Score        float64 // (RealCount - DecoyMean) / DecoyStdDev, 0 if DecoyStdDev is 0
}

// piShift is the irrational offset spec.md §4.8 adds to each of the 51
// integer shifts.
const piShift = 3.14159265358979

// decoyShifts returns the 51 mass shifts d + piShift for every integer
// d in {-25..+25}, in ascending order.
func decoyShifts() []float64 {
	shifts := make([]float64, 0, 51)
	for d := -25; d <= 25; d++ {
		shifts = append(shifts, float64(d)+piShift)
	}
	return shifts
}

// EstimateFDR counts real annotations at zero shift, then repeats the
// match at each of the 51 decoy shifts (added to every fragment's Mz)
// to build a null distribution of annotation counts, summarized via
// gonum.org/v1/gonum/stat.MeanStdDev (sample mean and unbiased standard
// deviation). All fragments passed in form one distribution; they are
// not partitioned by peptidoform.
func EstimateFDR(fragments []Fragment, spectrum Spectrum, tol Tolerance) FDREstimate {
	real := Annotate(fragments, spectrum, tol)

	shifts := decoyShifts()
	counts := make([]float64, len(shifts))
	for i, delta := range shifts {
		shifted := make([]Fragment, len(fragments))
		for j, f := range fragments {
			shifted[j] = f
			shifted[j].Mz = f.Mz + delta
		}
		counts[i] = float64(len(Annotate(shifted, spectrum, tol)))
	}

	mean, stddev := stat.MeanStdDev(counts, nil)
	est := FDREstimate{RealCount: len(real), DecoyMean: mean, DecoyStdDev: stddev}
	if stddev != 0 {
		est.Score = (float64(len(real)) - mean) / stddev
	}
	return est
}
