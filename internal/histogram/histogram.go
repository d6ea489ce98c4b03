// Package histogram computes 256-bin intensity histograms and renders the
// per-channel chart.
package histogram

import (
	"fmt"
	"math"

	"image-binarizer/internal/channels"
	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const Bins = 256

// Histogram is indexed by intensity; each value is a pixel count.
type Histogram [Bins]int

func (h Histogram) Total() int {
	total := 0
	for _, v := range h {
		total += v
	}
	return total
}

// Peak returns the most populated intensity and its count.
func (h Histogram) Peak() (intensity, count int) {
	for i, v := range h {
		if v > count {
			intensity, count = i, v
		}
	}
	return intensity, count
}

// Compute counts every pixel of a single-channel 8-bit Mat.
func Compute(plane gocv.Mat) (Histogram, error) {
	var h Histogram

	if err := safe.ValidateChannels(plane, 1, "histogram"); err != nil {
		return h, err
	}
	if err := safe.ValidateUint8(plane, "histogram"); err != nil {
		return h, err
	}

	mask := gocv.NewMat()
	defer mask.Close()
	hist := gocv.NewMat()
	defer hist.Close()

	gocv.CalcHist([]gocv.Mat{plane}, []int{0}, mask, &hist, []int{Bins}, []float64{0, Bins}, false)

	if hist.Rows() != Bins {
		return h, fmt.Errorf("histogram has %d bins, want %d", hist.Rows(), Bins)
	}

	for i := 0; i < Bins; i++ {
		h[i] = int(math.Round(float64(hist.GetFloatAt(i, 0))))
	}

	return h, nil
}

// ComputeRGB computes one histogram per plane, indexed by channels.Component.
func ComputeRGB(planes channels.Planes) ([3]Histogram, error) {
	var out [3]Histogram

	for _, c := range channels.Components {
		h, err := Compute(planes.Get(c))
		if err != nil {
			return out, fmt.Errorf("channel %s: %w", c.Letter(), err)
		}
		out[c] = h
	}

	return out, nil
}

// Filename is the chart artifact name, e.g. "pessoa_histogramas_RGB.png".
func Filename(role string) string {
	return role + "_histogramas_RGB.png"
}
