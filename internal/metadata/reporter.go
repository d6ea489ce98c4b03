// Package metadata reports the technical characteristics of a loaded image.
package metadata

import (
	"fmt"
	"io"
	"strings"

	"image-binarizer/internal/opencv/bridge"
	"image-binarizer/internal/opencv/safe"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

type Palette string

const (
	PaletteGray    Palette = "grayscale"
	PaletteRGB     Palette = "RGB (3 channels)"
	PaletteRGBA    Palette = "RGBA (4 channels with transparency)"
	PaletteUnknown Palette = "unknown"
)

func PaletteFor(channels int) Palette {
	switch channels {
	case 1:
		return PaletteGray
	case 3:
		return PaletteRGB
	case 4:
		return PaletteRGBA
	default:
		return PaletteUnknown
	}
}

type Report struct {
	Width    int
	Height   int
	Channels int
	Palette  Palette
	Gamut    Gamut

	// DominantColor is a "#rrggbb" hex string, empty if it could not be derived.
	DominantColor string
	// MeanHue and MeanChroma are the HCL coordinates of the mean color;
	// zero for grayscale images.
	MeanHue    float64
	MeanChroma float64
}

// Describe gathers the report for img. Multi-channel Mats are read in BGR order.
func Describe(img gocv.Mat) (Report, error) {
	if err := safe.ValidateMatForOperation(img, "metadata"); err != nil {
		return Report{}, err
	}

	channels := img.Channels()
	report := Report{
		Width:    img.Cols(),
		Height:   img.Rows(),
		Channels: channels,
		Palette:  PaletteFor(channels),
	}

	mean := img.Mean()
	if channels == 1 {
		minVal, maxVal, _, _ := gocv.MinMaxLoc(img)
		report.Gamut = ClassifyGray(uint8(minVal), uint8(maxVal), mean.Val1)
	} else {
		report.Gamut = ClassifyColor(mean.Val3, mean.Val2, mean.Val1)

		avg := colorful.Color{R: mean.Val3 / 255, G: mean.Val2 / 255, B: mean.Val1 / 255}
		report.MeanHue, report.MeanChroma, _ = avg.Hcl()
	}

	if goImg, err := bridge.MatToImage(img); err == nil {
		report.DominantColor = dominantcolor.Hex(dominantcolor.Find(goImg))
	}

	return report, nil
}

// Print writes the human-readable block for one role.
func Print(w io.Writer, role string, r Report) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "TECHNICAL CHARACTERISTICS: %s\n", strings.ToUpper(role))
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "Width: %d pixels\n", r.Width)
	fmt.Fprintf(w, "Height: %d pixels\n", r.Height)
	fmt.Fprintf(w, "Channels: %d\n", r.Channels)
	fmt.Fprintf(w, "Palette: %s\n", r.Palette)
	fmt.Fprintf(w, "Gamut: %s\n", r.Gamut.Describe())
	if r.DominantColor != "" {
		fmt.Fprintf(w, "Dominant color: %s\n", r.DominantColor)
	}
	if r.Gamut.Color != nil {
		fmt.Fprintf(w, "Mean hue: %.1f° (chroma %.2f)\n", r.MeanHue, r.MeanChroma)
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}
