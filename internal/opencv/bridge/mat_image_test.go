package bridge

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestImageToMat_StoresBGR(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	mat, err := ImageToMat(img)
	require.NoError(t, err)
	defer mat.Close()

	require.Equal(t, 3, mat.Channels())
	v := mat.GetVecbAt(0, 0)
	assert.Equal(t, []uint8{50, 100, 200}, []uint8(v))
}

func TestMatToImage_RoundTripColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(10 * x), G: uint8(20 * y), B: uint8(x + y), A: 255})
		}
	}

	mat, err := ImageToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	out, err := MatToImage(mat)
	require.NoError(t, err)

	rgba, ok := out.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, src.Pix, rgba.Pix)
}

func TestGrayToMat_RoundTrip(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 13)
	}

	mat, err := GrayToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 1, mat.Channels())
	assert.Equal(t, uint8(13), mat.GetUCharAt(0, 1))

	out, err := MatToImage(mat)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.(*image.Gray).Pix)
}

func TestMatToImage_RejectsEmpty(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := MatToImage(empty)
	assert.Error(t, err)
}
