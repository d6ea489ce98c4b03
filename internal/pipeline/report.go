package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"image-binarizer/internal/algorithms"
)

const ruleWidth = 60

func printHeader(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(w, "IMAGE BINARIZATION - OpenCV")
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

func printRoleBanner(w io.Writer, role string) {
	rule := strings.Repeat("#", ruleWidth)
	fmt.Fprintf(w, "\n%s\nPROCESSING: %s\n%s\n", rule, strings.ToUpper(role), rule)
}

func printBinarizations(w io.Writer, bins []Binarization) {
	for _, b := range bins {
		switch {
		case b.Local:
			fmt.Fprintf(w, "    - %s (local %dx%d window, C=%d)\n", b.Method,
				algorithms.AdaptiveBlockSize, algorithms.AdaptiveBlockSize, algorithms.AdaptiveOffset)
		case !b.Separable:
			fmt.Fprintf(w, "    - %s (T=%.0f, single intensity: all background)\n", b.Method, b.Threshold)
		default:
			fmt.Fprintf(w, "    - %s (T=%.0f)\n", b.Method, b.Threshold)
		}
	}
}

func printFooter(w io.Writer, layout Layout, roles []Role) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PROCESSING COMPLETE!")
	fmt.Fprintln(w, rule)

	root := layout.Root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	fmt.Fprintf(w, "\nAll results were saved to: %s\n", root)
	fmt.Fprintln(w, "\nOutput tree:")
	printTree(w, layout, roles)
	fmt.Fprintln(w)
}

// printTree lists the role directories the run created.
func printTree(w io.Writer, layout Layout, roles []Role) {
	fmt.Fprintf(w, "  %s/\n", filepath.Base(layout.Root))

	subdirs := []string{ChannelsDirName, HistogramsDirName, BinarizedDirName}
	for i, r := range roles {
		last := i == len(roles)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(w, "    %s%s/\n", branch, r.Name)

		for j, sub := range subdirs {
			leaf := "├── "
			if j == len(subdirs)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(w, "    %s%s%s/\n", indent, leaf, sub)
		}
	}
}
