package pipeline

import (
	"fmt"

	"image-binarizer/internal/logger"
	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

type ImageSaver interface {
	Save(path string, mat gocv.Mat) error
}

type imageSaver struct {
	logger logger.Logger
}

// Save encodes mat by the extension of path. Any failure wraps ErrWriteFailed.
func (s *imageSaver) Save(path string, mat gocv.Mat) error {
	if err := safe.ValidateMatForOperation(mat, "save"); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		err := fmt.Errorf("%w: %s", ErrWriteFailed, path)
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"path": path,
		})
		return err
	}

	s.logger.Debug("ImageSaver", "image saved", map[string]interface{}{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	})

	return nil
}
