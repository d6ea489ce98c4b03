// Package channels splits three-channel images into independent color planes.
package channels

import (
	"fmt"

	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

type Component int

const (
	Red Component = iota
	Green
	Blue
)

// Components lists the planes in report order.
var Components = [3]Component{Red, Green, Blue}

func (c Component) Letter() string {
	return [...]string{"R", "G", "B"}[c]
}

func (c Component) Name() string {
	return [...]string{"Red", "Green", "Blue"}[c]
}

// bgrIndex is the position of the component in OpenCV's decode order.
func (c Component) bgrIndex() int {
	return 2 - int(c)
}

// Planes holds one CV_8UC1 Mat per component, each the size of the source.
type Planes [3]gocv.Mat

func (p Planes) Get(c Component) gocv.Mat {
	return p[c]
}

func (p Planes) Close() {
	for i := range p {
		p[i].Close()
	}
}

// Split selects the R, G and B planes of a BGR Mat without altering values.
func Split(src gocv.Mat) (Planes, error) {
	var planes Planes

	if err := safe.ValidateChannels(src, 3, "channel split"); err != nil {
		return planes, err
	}

	bgr := gocv.Split(src)
	if len(bgr) != 3 {
		for _, m := range bgr {
			m.Close()
		}
		return planes, fmt.Errorf("channel split produced %d planes", len(bgr))
	}

	for _, c := range Components {
		planes[c] = bgr[c.bgrIndex()]
	}

	return planes, nil
}

// Merge reassembles planes into a BGR Mat; the inverse of Split.
func Merge(p Planes) (gocv.Mat, error) {
	for _, c := range Components {
		if err := safe.ValidateChannels(p[c], 1, "channel merge "+c.Letter()); err != nil {
			return gocv.NewMat(), err
		}
		if !safe.SameSize(p[c], p[Red]) {
			return gocv.NewMat(), fmt.Errorf("plane %s size differs from plane R", c.Letter())
		}
	}

	dst := gocv.NewMat()
	gocv.Merge([]gocv.Mat{p[Blue], p[Green], p[Red]}, &dst)
	return dst, nil
}

// Filename is the artifact name of a plane, e.g. "pessoa_canal_R.png".
func Filename(role string, c Component) string {
	return fmt.Sprintf("%s_canal_%s.png", role, c.Letter())
}
