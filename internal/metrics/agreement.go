package metrics

import (
	"fmt"
	"math"

	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Agreement is the pixel confusion matrix of a binary result against a
// binary reference. Pixels above 127 count as foreground.
type Agreement struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
	TotalPixels    int
}

// Compare counts agreement between two single-channel binary Mats of equal size.
func Compare(reference, result gocv.Mat) (Agreement, error) {
	if err := validateBinary(reference, "reference"); err != nil {
		return Agreement{}, err
	}
	if err := validateBinary(result, "result"); err != nil {
		return Agreement{}, err
	}
	if !safe.SameSize(reference, result) {
		return Agreement{}, fmt.Errorf("dimension mismatch %dx%d vs %dx%d",
			reference.Cols(), reference.Rows(), result.Cols(), result.Rows())
	}

	refMask, err := foregroundMask(reference)
	if err != nil {
		return Agreement{}, err
	}
	defer refMask.Close()

	resMask, err := foregroundMask(result)
	if err != nil {
		return Agreement{}, err
	}
	defer resMask.Close()

	both := gocv.NewMat()
	defer both.Close()
	gocv.BitwiseAnd(refMask, resMask, &both)

	tp := gocv.CountNonZero(both)
	refCount := gocv.CountNonZero(refMask)
	resCount := gocv.CountNonZero(resMask)
	total := reference.Rows() * reference.Cols()

	a := Agreement{
		TruePositives:  tp,
		FalsePositives: resCount - tp,
		FalseNegatives: refCount - tp,
		TotalPixels:    total,
	}
	a.TrueNegatives = total - a.TruePositives - a.FalsePositives - a.FalseNegatives
	return a, nil
}

func validateBinary(mat gocv.Mat, context string) error {
	if err := safe.ValidateMatForOperation(mat, context); err != nil {
		return err
	}
	if err := safe.ValidateChannels(mat, 1, context); err != nil {
		return err
	}
	return safe.ValidateUint8(mat, context)
}

func foregroundMask(mat gocv.Mat) (gocv.Mat, error) {
	mask := gocv.NewMat()
	gocv.Threshold(mat, &mask, 127, 255, gocv.ThresholdBinary)
	if mask.Empty() {
		mask.Close()
		return gocv.NewMat(), fmt.Errorf("foreground mask: threshold produced empty matrix")
	}
	return mask, nil
}

// Accuracy is the share of pixels on which both images agree.
func (a Agreement) Accuracy() float64 {
	if a.TotalPixels == 0 {
		return 0
	}
	return float64(a.TruePositives+a.TrueNegatives) / float64(a.TotalPixels)
}

// FMeasure is 1 when neither image has foreground.
func (a Agreement) FMeasure() float64 {
	if a.TruePositives+a.FalsePositives+a.FalseNegatives == 0 {
		return 1
	}
	if a.TruePositives == 0 {
		return 0
	}

	precision := float64(a.TruePositives) / float64(a.TruePositives+a.FalsePositives)
	recall := float64(a.TruePositives) / float64(a.TruePositives+a.FalseNegatives)
	return 2 * precision * recall / (precision + recall)
}

// NRM is the negative rate metric; 0 means identical images.
func (a Agreement) NRM() float64 {
	var fnr, fpr float64
	if pos := a.TruePositives + a.FalseNegatives; pos > 0 {
		fnr = float64(a.FalseNegatives) / float64(pos)
	}
	if neg := a.FalsePositives + a.TrueNegatives; neg > 0 {
		fpr = float64(a.FalsePositives) / float64(neg)
	}
	return (fnr + fpr) / 2
}

// PSNR treats both images as {0, 1} signals. Identical images yield +Inf.
func (a Agreement) PSNR() float64 {
	if a.TotalPixels == 0 {
		return 0
	}
	mse := float64(a.FalsePositives+a.FalseNegatives) / float64(a.TotalPixels)
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(1/mse)
}
