package algorithms

import (
	"fmt"

	"image-binarizer/internal/algorithms/otsu"
	"image-binarizer/internal/histogram"

	"gocv.io/x/gocv"
)

// Fixed applies a constant threshold: 255 where intensity > threshold.
type Fixed struct {
	threshold float32
}

func NewFixed(threshold int) *Fixed {
	return &Fixed{threshold: float32(threshold)}
}

func (f *Fixed) GetName() string {
	return "fixed"
}

func (f *Fixed) Filename(role string) string {
	return role + "_binaria_limiar_simples.png"
}

func (f *Fixed) Apply(gray gocv.Mat) (Result, error) {
	if err := validateGray(gray); err != nil {
		return Result{}, err
	}

	dst := gocv.NewMat()
	gocv.Threshold(gray, &dst, f.threshold, MaxValue, gocv.ThresholdBinary)

	return Result{
		Method:          f.GetName(),
		Image:           dst,
		Threshold:       float64(f.threshold),
		Separable:       true,
		ForegroundRatio: foregroundRatio(dst),
	}, nil
}

// Otsu thresholds at the value maximizing between-class variance.
type Otsu struct{}

func NewOtsu() *Otsu {
	return &Otsu{}
}

func (o *Otsu) GetName() string {
	return "otsu"
}

func (o *Otsu) Filename(role string) string {
	return role + "_binaria_otsu.png"
}

func (o *Otsu) Apply(gray gocv.Mat) (Result, error) {
	if err := validateGray(gray); err != nil {
		return Result{}, err
	}

	hist, err := histogram.Compute(gray)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute histogram: %w", err)
	}

	selected, err := otsu.Threshold(hist)
	if err != nil {
		return Result{}, err
	}

	dst := gocv.NewMat()
	gocv.Threshold(gray, &dst, float32(selected.Threshold), MaxValue, gocv.ThresholdBinary)

	return Result{
		Method:          o.GetName(),
		Image:           dst,
		Threshold:       float64(selected.Threshold),
		Separable:       selected.Separable,
		ForegroundRatio: foregroundRatio(dst),
	}, nil
}
