package bridge

import (
	"fmt"
	"image"
	"image/color"

	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// MatToImage copies an 8-bit Mat into a Go image. Multi-channel Mats are
// read in OpenCV's BGR(A) order.
func MatToImage(mat gocv.Mat) (image.Image, error) {
	if err := safe.ValidateMatForOperation(mat, "MatToImage"); err != nil {
		return nil, err
	}
	if err := safe.ValidateUint8(mat, "MatToImage"); err != nil {
		return nil, err
	}

	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("failed to access Mat data: %w", err)
	}

	rows, cols := mat.Rows(), mat.Cols()

	switch channels := mat.Channels(); channels {
	case 1:
		return matToGray(data, rows, cols), nil
	case 3, 4:
		return matToRGBA(data, rows, cols, channels), nil
	default:
		return nil, fmt.Errorf("unsupported number of channels: %d", channels)
	}
}

func matToGray(data []uint8, rows, cols int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cols, rows))

	for y := 0; y < rows; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+cols], data[y*cols:(y+1)*cols])
	}

	return img
}

func matToRGBA(data []uint8, rows, cols, channels int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := (y*cols + x) * channels
			alpha := uint8(255)
			if channels == 4 {
				alpha = data[i+3]
			}
			img.SetRGBA(x, y, color.RGBA{R: data[i+2], G: data[i+1], B: data[i], A: alpha})
		}
	}

	return img
}

// GrayToMat builds a CV_8UC1 Mat from a grayscale image.
func GrayToMat(img *image.Gray) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	data := make([]byte, 0, width*height)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		start := img.PixOffset(bounds.Min.X, y)
		data = append(data, img.Pix[start:start+width]...)
	}

	return gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC1, data)
}

// ImageToMat builds a CV_8UC3 Mat in BGR order from any image.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	data := make([]byte, 0, width*height*3)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()

			// Convert from 16-bit to 8-bit
			data = append(data, uint8(b>>8), uint8(g>>8), uint8(r>>8))
		}
	}

	return gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, data)
}
