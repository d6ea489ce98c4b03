package algorithms

import (
	"image"
	"math/rand"
	"testing"

	"image-binarizer/internal/opencv/bridge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func randomGray(t *testing.T, seed int64, w, h int) (*image.Gray, gocv.Mat) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}

	mat, err := bridge.GrayToMat(img)
	require.NoError(t, err)
	return img, mat
}

func uniformGray(value float64, w, h int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, 0, 0, 0), h, w, gocv.MatTypeCV8UC1)
}

func pixels(t *testing.T, m gocv.Mat) []uint8 {
	t.Helper()

	img, err := bridge.MatToImage(m)
	require.NoError(t, err)
	return img.(*image.Gray).Pix
}

func assertBinary(t *testing.T, m gocv.Mat) {
	t.Helper()

	for i, v := range pixels(t, m) {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d has value %d, want 0 or 255", i, v)
		}
	}
}

func TestFixed_ForegroundIffAbove127(t *testing.T) {
	src, gray := randomGray(t, 1, 64, 48)
	defer gray.Close()

	res, err := NewFixed(FixedThreshold).Apply(gray)
	require.NoError(t, err)
	defer res.Close()

	out := pixels(t, res.Image)
	for i, v := range src.Pix {
		want := uint8(0)
		if v > 127 {
			want = 255
		}
		require.Equal(t, want, out[i], "pixel %d (input %d)", i, v)
	}
	assert.Equal(t, float64(127), res.Threshold)
	assert.False(t, res.Local)
}

func TestFixed_BoundaryValues(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.Pix = []uint8{127, 128, 0}
	gray, err := bridge.GrayToMat(img)
	require.NoError(t, err)
	defer gray.Close()

	res, err := NewFixed(FixedThreshold).Apply(gray)
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, []uint8{0, 255, 0}, pixels(t, res.Image))
}

func TestOtsu_BimodalImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		if i < 60 {
			img.Pix[i] = 50
		} else {
			img.Pix[i] = 200
		}
	}
	gray, err := bridge.GrayToMat(img)
	require.NoError(t, err)
	defer gray.Close()

	res, err := NewOtsu().Apply(gray)
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, float64(50), res.Threshold)
	assert.True(t, res.Separable)
	assert.InDelta(t, 0.4, res.ForegroundRatio, 1e-9)

	out := pixels(t, res.Image)
	for i, v := range img.Pix {
		assert.Equal(t, v > 50, out[i] == 255)
	}
}

func TestOtsu_Deterministic(t *testing.T) {
	_, gray := randomGray(t, 42, 80, 60)
	defer gray.Close()

	first, err := NewOtsu().Apply(gray)
	require.NoError(t, err)
	defer first.Close()
	second, err := NewOtsu().Apply(gray)
	require.NoError(t, err)
	defer second.Close()

	assert.GreaterOrEqual(t, first.Threshold, 0.0)
	assert.LessOrEqual(t, first.Threshold, 255.0)
	assert.Equal(t, first.Threshold, second.Threshold)
	assert.Equal(t, pixels(t, first.Image), pixels(t, second.Image))
	assertBinary(t, first.Image)
}

func TestOtsu_SingleIntensityIsAllBackground(t *testing.T) {
	gray := uniformGray(128, 100, 100)
	defer gray.Close()

	res, err := NewOtsu().Apply(gray)
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, float64(128), res.Threshold)
	assert.False(t, res.Separable)
	assert.Zero(t, gocv.CountNonZero(res.Image))
}

func TestAdaptive_OutputsAreBinaryAndDiffer(t *testing.T) {
	_, gray := randomGray(t, 9, 50, 40)
	defer gray.Close()

	gauss, err := NewAdaptive(AdaptiveGaussian, AdaptiveBlockSize, AdaptiveOffset).Apply(gray)
	require.NoError(t, err)
	defer gauss.Close()
	mean, err := NewAdaptive(AdaptiveMean, AdaptiveBlockSize, AdaptiveOffset).Apply(gray)
	require.NoError(t, err)
	defer mean.Close()

	assertBinary(t, gauss.Image)
	assertBinary(t, mean.Image)
	assert.True(t, gauss.Local)
	assert.NotEqual(t, pixels(t, gauss.Image), pixels(t, mean.Image))

	assert.Equal(t, 40, gauss.Image.Rows())
	assert.Equal(t, 50, gauss.Image.Cols())
}

func TestAdaptive_UniformRegionGivesIdenticalOutputs(t *testing.T) {
	gray := uniformGray(128, 30, 30)
	defer gray.Close()

	gauss, err := NewAdaptive(AdaptiveGaussian, AdaptiveBlockSize, AdaptiveOffset).Apply(gray)
	require.NoError(t, err)
	defer gauss.Close()
	mean, err := NewAdaptive(AdaptiveMean, AdaptiveBlockSize, AdaptiveOffset).Apply(gray)
	require.NoError(t, err)
	defer mean.Close()

	assert.Equal(t, pixels(t, gauss.Image), pixels(t, mean.Image))
	// 128 exceeds the local threshold 128-2 everywhere, borders included.
	assert.Equal(t, 900, gocv.CountNonZero(mean.Image))
}

func TestAdaptive_RejectsEvenBlockSize(t *testing.T) {
	gray := uniformGray(10, 5, 5)
	defer gray.Close()

	_, err := NewAdaptive(AdaptiveMean, 10, 2).Apply(gray)
	assert.Error(t, err)
}

func TestManager_RegistersFourMethodsInOrder(t *testing.T) {
	m := NewManager()

	assert.Equal(t, []string{"fixed", "otsu", "adaptive-gaussian", "adaptive-mean"}, m.GetAvailableAlgorithms())

	alg, err := m.GetAlgorithm("otsu")
	require.NoError(t, err)
	assert.Equal(t, "documento_binaria_otsu.png", alg.Filename("documento"))

	_, err = m.GetAlgorithm("triclass")
	assert.Error(t, err)

	var names []string
	for _, a := range m.Algorithms() {
		names = append(names, a.Filename("pessoa"))
	}
	assert.Equal(t, []string{
		"pessoa_binaria_limiar_simples.png",
		"pessoa_binaria_otsu.png",
		"pessoa_binaria_adaptativa_gaussiana.png",
		"pessoa_binaria_adaptativa_media.png",
	}, names)
}

func TestManager_ApplyAll(t *testing.T) {
	_, gray := randomGray(t, 3, 20, 20)
	defer gray.Close()

	results, err := NewManager().ApplyAll(gray)
	require.NoError(t, err)
	defer func() {
		for _, r := range results {
			r.Close()
		}
	}()

	require.Len(t, results, 4)
	for _, r := range results {
		assertBinary(t, r.Image)
	}
}

func TestManager_ApplyAllRejectsColorAndEmpty(t *testing.T) {
	bgr := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)
	defer bgr.Close()
	_, err := NewManager().ApplyAll(bgr)
	assert.Error(t, err)

	empty := gocv.NewMat()
	defer empty.Close()
	_, err = NewManager().ApplyAll(empty)
	assert.Error(t, err)
}
