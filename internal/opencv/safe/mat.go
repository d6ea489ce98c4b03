package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

const maxDimension = 32768

func ValidateMatForOperation(mat gocv.Mat, operation string) error {
	if mat.Ptr() == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	if err := validateDimensions(mat.Rows(), mat.Cols()); err != nil {
		return fmt.Errorf("%w for operation: %s", err, operation)
	}

	return nil
}

// ValidateChannels checks both the Mat and its channel count.
func ValidateChannels(mat gocv.Mat, channels int, operation string) error {
	if err := ValidateMatForOperation(mat, operation); err != nil {
		return err
	}

	if got := mat.Channels(); got != channels {
		return fmt.Errorf("%s requires %d channel(s), got %d", operation, channels, got)
	}

	return nil
}

// ValidateUint8 rejects Mats whose depth is not 8-bit unsigned.
func ValidateUint8(mat gocv.Mat, operation string) error {
	switch mat.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return nil
	default:
		return fmt.Errorf("%s requires 8-bit unsigned pixels, got Mat type %v", operation, mat.Type())
	}
}

func ValidateColorConversion(src gocv.Mat, code gocv.ColorConversionCode) error {
	if err := ValidateMatForOperation(src, "CvtColor"); err != nil {
		return err
	}

	channels := src.Channels()

	switch code {
	case gocv.ColorBGRToGray, gocv.ColorRGBToGray, gocv.ColorBGRToRGB:
		if channels != 3 {
			return fmt.Errorf("BGR/RGB conversion requires 3 channels, got %d", channels)
		}
	case gocv.ColorGrayToBGR:
		if channels != 1 {
			return fmt.Errorf("Gray to BGR conversion requires 1 channel, got %d", channels)
		}
	case gocv.ColorBGRAToBGR, gocv.ColorBGRAToGray:
		if channels != 4 {
			return fmt.Errorf("BGRA conversion requires 4 channels, got %d", channels)
		}
	}

	return nil
}

// SameSize reports whether two Mats share rows and cols.
func SameSize(a, b gocv.Mat) bool {
	return a.Rows() == b.Rows() && a.Cols() == b.Cols()
}

func validateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	if rows > maxDimension || cols > maxDimension {
		return fmt.Errorf("dimensions %dx%d exceed maximum size", cols, rows)
	}

	return nil
}

func MatTypeSize(matType gocv.MatType) int {
	switch matType {
	case gocv.MatTypeCV8UC1:
		return 1
	case gocv.MatTypeCV8UC3:
		return 3
	case gocv.MatTypeCV8UC4:
		return 4
	case gocv.MatTypeCV16UC1:
		return 2
	case gocv.MatTypeCV32FC1:
		return 4
	default:
		return 1
	}
}
