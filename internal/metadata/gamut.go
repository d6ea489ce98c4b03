package metadata

import (
	"fmt"
	"math"
)

type GamutKind string

const (
	GamutRestricted GamutKind = "restricted"
	GamutDark       GamutKind = "dark"
	GamutLight      GamutKind = "light"
	GamutBalanced   GamutKind = "balanced"

	GamutNeutral GamutKind = "neutral"
	GamutWarm    GamutKind = "warm"
	GamutCool    GamutKind = "cool"
	GamutMixed   GamutKind = "mixed"
)

const (
	lowContrastRange = 50
	darkMean         = 85
	lightMean        = 170
	neutralSpread    = 10
)

type GrayStats struct {
	Min   uint8
	Max   uint8
	Range int
	Mean  float64
}

type ColorStats struct {
	MeanR float64
	MeanG float64
	MeanB float64
}

// Gamut is a coarse tonal label plus the statistics that produced it.
// Exactly one of Gray and Color is set.
type Gamut struct {
	Kind  GamutKind
	Gray  *GrayStats
	Color *ColorStats
}

func ClassifyGray(minVal, maxVal uint8, mean float64) Gamut {
	stats := &GrayStats{
		Min:   minVal,
		Max:   maxVal,
		Range: int(maxVal) - int(minVal),
		Mean:  mean,
	}

	var kind GamutKind
	switch {
	case stats.Range < lowContrastRange:
		kind = GamutRestricted
	case mean < darkMean:
		kind = GamutDark
	case mean > lightMean:
		kind = GamutLight
	default:
		kind = GamutBalanced
	}

	return Gamut{Kind: kind, Gray: stats}
}

func ClassifyColor(meanR, meanG, meanB float64) Gamut {
	stats := &ColorStats{MeanR: meanR, MeanG: meanG, MeanB: meanB}

	var kind GamutKind
	switch {
	case math.Abs(meanR-meanG) < neutralSpread && math.Abs(meanG-meanB) < neutralSpread:
		kind = GamutNeutral
	case meanR > meanG && meanR > meanB:
		kind = GamutWarm
	case meanB > meanR && meanB > meanG:
		kind = GamutCool
	default:
		kind = GamutMixed
	}

	return Gamut{Kind: kind, Color: stats}
}

// Describe renders the label with its backing numbers.
func (g Gamut) Describe() string {
	switch g.Kind {
	case GamutRestricted:
		return fmt.Sprintf("restricted (range: %d), low-contrast image", g.Gray.Range)
	case GamutDark:
		return fmt.Sprintf("dark (mean: %.0f), mostly dark tones", g.Gray.Mean)
	case GamutLight:
		return fmt.Sprintf("light (mean: %.0f), mostly light tones", g.Gray.Mean)
	case GamutBalanced:
		return fmt.Sprintf("balanced (mean: %.0f), evenly distributed tones", g.Gray.Mean)
	case GamutNeutral:
		c := g.Color
		return fmt.Sprintf("neutral (mean RGB: R=%.0f, G=%.0f, B=%.0f), tones close to gray", c.MeanR, c.MeanG, c.MeanB)
	case GamutWarm:
		return fmt.Sprintf("warm (R dominant: %.0f), reddish tones", g.Color.MeanR)
	case GamutCool:
		return fmt.Sprintf("cool (B dominant: %.0f), bluish tones", g.Color.MeanB)
	default:
		c := g.Color
		return fmt.Sprintf("mixed (RGB: R=%.0f, G=%.0f, B=%.0f), mixed colors", c.MeanR, c.MeanG, c.MeanB)
	}
}
