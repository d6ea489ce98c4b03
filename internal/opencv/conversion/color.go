package conversion

import (
	"fmt"

	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

func CvtColorSafe(src gocv.Mat, dst *gocv.Mat, code gocv.ColorConversionCode) error {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return fmt.Errorf("color conversion validation failed: %w", err)
	}

	gocv.CvtColor(src, dst, code)

	if dst.Empty() {
		return fmt.Errorf("color conversion produced an empty Mat")
	}

	return nil
}

// ConvertToGrayscale returns a new single-channel Mat; src is left untouched.
// Three-channel input is read as BGR, the order OpenCV decodes into.
func ConvertToGrayscale(src gocv.Mat) (gocv.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "ConvertToGrayscale"); err != nil {
		return gocv.NewMat(), err
	}

	var code gocv.ColorConversionCode
	switch channels := src.Channels(); channels {
	case 1:
		return src.Clone(), nil
	case 3:
		code = gocv.ColorBGRToGray
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		return gocv.NewMat(), fmt.Errorf("unsupported channel count for grayscale conversion: %d", channels)
	}

	dst := gocv.NewMat()
	if err := CvtColorSafe(src, &dst, code); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("color conversion failed: %w", err)
	}

	return dst, nil
}
