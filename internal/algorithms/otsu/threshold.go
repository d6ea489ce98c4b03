// Package otsu selects the global threshold that maximizes between-class
// variance over a 256-bin intensity histogram.
package otsu

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

const levels = 256

var ErrEmptyHistogram = errors.New("histogram has no pixels")

// Result is the selected threshold. Pixels with intensity > Threshold are
// foreground. Separable is false when the histogram holds a single
// intensity; Threshold is then that intensity so every pixel falls in the
// background class.
type Result struct {
	Threshold int
	Variance  float64
	Separable bool
}

// Threshold runs the classical two-class search over candidates 0..255.
// Class 0 holds intensities <= t, class 1 the rest. Ties keep the lowest t.
func Threshold(hist [levels]int) (Result, error) {
	counts := make([]float64, levels)
	weighted := make([]float64, levels)
	for i, c := range hist {
		counts[i] = float64(c)
		weighted[i] = float64(i) * float64(c)
	}

	total := floats.Sum(counts)
	if total == 0 {
		return Result{}, ErrEmptyHistogram
	}

	cumCounts := floats.CumSum(make([]float64, levels), counts)
	cumWeighted := floats.CumSum(make([]float64, levels), weighted)
	totalWeighted := cumWeighted[levels-1]

	best := Result{Threshold: -1}
	for t := 0; t < levels; t++ {
		w0 := cumCounts[t]
		w1 := total - w0
		if w0 == 0 || w1 == 0 {
			continue
		}

		mu0 := cumWeighted[t] / w0
		mu1 := (totalWeighted - cumWeighted[t]) / w1
		diff := mu0 - mu1

		variance := (w0 / total) * (w1 / total) * diff * diff
		if variance > best.Variance {
			best = Result{Threshold: t, Variance: variance, Separable: true}
		}
	}

	if !best.Separable {
		return Result{Threshold: maxIntensity(hist)}, nil
	}

	return best, nil
}

func maxIntensity(hist [levels]int) int {
	for i := levels - 1; i >= 0; i-- {
		if hist[i] > 0 {
			return i
		}
	}
	return 0
}
