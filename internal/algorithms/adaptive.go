package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

type AdaptiveWeighting int

const (
	AdaptiveGaussian AdaptiveWeighting = iota
	AdaptiveMean
)

// Adaptive compares each pixel with a weighted average of its blockSize x
// blockSize neighborhood minus offset. OpenCV replicates edge pixels so the
// window is defined at the border.
type Adaptive struct {
	weighting AdaptiveWeighting
	blockSize int
	offset    float32
}

func NewAdaptive(weighting AdaptiveWeighting, blockSize int, offset float32) *Adaptive {
	return &Adaptive{
		weighting: weighting,
		blockSize: blockSize,
		offset:    offset,
	}
}

func (a *Adaptive) GetName() string {
	if a.weighting == AdaptiveGaussian {
		return "adaptive-gaussian"
	}
	return "adaptive-mean"
}

func (a *Adaptive) Filename(role string) string {
	if a.weighting == AdaptiveGaussian {
		return role + "_binaria_adaptativa_gaussiana.png"
	}
	return role + "_binaria_adaptativa_media.png"
}

func (a *Adaptive) Apply(gray gocv.Mat) (Result, error) {
	if err := validateGray(gray); err != nil {
		return Result{}, err
	}

	if a.blockSize < 3 || a.blockSize%2 == 0 {
		return Result{}, fmt.Errorf("block size must be odd and at least 3, got: %d", a.blockSize)
	}

	method := gocv.AdaptiveThresholdGaussian
	if a.weighting == AdaptiveMean {
		method = gocv.AdaptiveThresholdMean
	}

	dst := gocv.NewMat()
	gocv.AdaptiveThreshold(gray, &dst, MaxValue, method, gocv.ThresholdBinary, a.blockSize, a.offset)

	return Result{
		Method:          a.GetName(),
		Image:           dst,
		Local:           true,
		Separable:       true,
		ForegroundRatio: foregroundRatio(dst),
	}, nil
}
