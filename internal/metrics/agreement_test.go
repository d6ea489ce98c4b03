package metrics

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// halfMat is white on columns [0, whiteCols) and black elsewhere.
func halfMat(t *testing.T, rows, cols, whiteCols int) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	mat.SetTo(gocv.NewScalar(0, 0, 0, 0))
	if whiteCols > 0 {
		region := mat.Region(image.Rect(0, 0, whiteCols, rows))
		region.SetTo(gocv.NewScalar(255, 0, 0, 0))
		region.Close()
	}
	return mat
}

func TestCompare_Identical(t *testing.T) {
	a := halfMat(t, 10, 10, 4)
	defer a.Close()

	agreement, err := Compare(a, a)
	require.NoError(t, err)

	assert.Equal(t, Agreement{TruePositives: 40, TrueNegatives: 60, TotalPixels: 100}, agreement)
	assert.Equal(t, 1.0, agreement.Accuracy())
	assert.Equal(t, 1.0, agreement.FMeasure())
	assert.Equal(t, 0.0, agreement.NRM())
	assert.True(t, math.IsInf(agreement.PSNR(), 1))
}

func TestCompare_PartialOverlap(t *testing.T) {
	ref := halfMat(t, 10, 10, 4)
	defer ref.Close()
	res := halfMat(t, 10, 10, 6)
	defer res.Close()

	agreement, err := Compare(ref, res)
	require.NoError(t, err)

	assert.Equal(t, 40, agreement.TruePositives)
	assert.Equal(t, 20, agreement.FalsePositives)
	assert.Equal(t, 0, agreement.FalseNegatives)
	assert.Equal(t, 40, agreement.TrueNegatives)

	assert.InDelta(t, 0.8, agreement.Accuracy(), 1e-9)
	// precision 2/3, recall 1
	assert.InDelta(t, 0.8, agreement.FMeasure(), 1e-9)
	// fnr 0, fpr 20/60
	assert.InDelta(t, 1.0/6.0, agreement.NRM(), 1e-9)
	assert.InDelta(t, 10*math.Log10(5), agreement.PSNR(), 1e-9)
}

func TestCompare_BothEmpty(t *testing.T) {
	a := halfMat(t, 5, 5, 0)
	defer a.Close()

	agreement, err := Compare(a, a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, agreement.FMeasure())
	assert.Equal(t, 25, agreement.TrueNegatives)
}

func TestCompare_DisjointForeground(t *testing.T) {
	ref := halfMat(t, 4, 4, 4)
	defer ref.Close()
	res := halfMat(t, 4, 4, 0)
	defer res.Close()

	agreement, err := Compare(ref, res)
	require.NoError(t, err)
	assert.Equal(t, 0.0, agreement.FMeasure())
	assert.Equal(t, 0.5, agreement.NRM())
	assert.Equal(t, 0.0, agreement.PSNR())
}

func TestCompare_Rejects(t *testing.T) {
	small := halfMat(t, 4, 4, 2)
	defer small.Close()
	large := halfMat(t, 8, 8, 2)
	defer large.Close()
	color := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)
	defer color.Close()
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := Compare(small, large)
	assert.Error(t, err)

	_, err = Compare(small, color)
	assert.Error(t, err)

	_, err = Compare(empty, small)
	assert.Error(t, err)
}
