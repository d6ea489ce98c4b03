package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"image-binarizer/internal/logger"
	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

type ImageLoader interface {
	Load(path string) (gocv.Mat, error)
}

type imageLoader struct {
	logger logger.Logger
}

// Load decodes path as a three-channel BGR image.
func (l *imageLoader) Load(path string) (gocv.Mat, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return gocv.NewMat(), fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return gocv.NewMat(), fmt.Errorf("%w: %s: %v", ErrUnreadableInput, path, err)
	}

	if info.IsDir() {
		return gocv.NewMat(), fmt.Errorf("%w: %s is a directory", ErrUnreadableInput, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if err := safe.ValidateMatForOperation(mat, "load"); err != nil {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: %s: decoder returned no image", ErrUnreadableInput, path)
	}

	l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
		"format":   determineFormat(path),
		"bytes":    info.Size(),
	})

	return mat, nil
}

func determineFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".webp":
		return "webp"
	default:
		return "unknown"
	}
}
