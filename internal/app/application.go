package app

import (
	"fmt"
	"io"
	"os"

	"image-binarizer/internal/logger"
	"image-binarizer/internal/opencv/memory"
	"image-binarizer/internal/pipeline"
)

const (
	AppName    = "image-binarizer"
	AppVersion = "1.0.0"
)

type Application struct {
	config        pipeline.Config
	logger        logger.Logger
	memoryManager *memory.Manager
	coordinator   *pipeline.Coordinator
}

// NewApplication wires the pipeline. Console text goes to out, logs to log.
func NewApplication(cfg pipeline.Config, out io.Writer, log logger.Logger) (*Application, error) {
	if out == nil {
		out = os.Stdout
	}

	memMgr := memory.NewManager(log)

	coordinator, err := pipeline.NewCoordinator(cfg, out, log, memMgr)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}

	log.Info("Application", "initialized", map[string]interface{}{
		"app":     AppName,
		"version": AppVersion,
	})

	return &Application{
		config:        cfg,
		logger:        log,
		memoryManager: memMgr,
		coordinator:   coordinator,
	}, nil
}

// Run processes every configured role and releases native memory afterwards.
func (a *Application) Run() (pipeline.Summary, error) {
	defer a.memoryManager.Cleanup()

	summary, err := a.coordinator.Run()
	if err != nil {
		return summary, fmt.Errorf("run aborted: %w", err)
	}

	return summary, nil
}
