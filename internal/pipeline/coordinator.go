package pipeline

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"image-binarizer/internal/algorithms"
	"image-binarizer/internal/channels"
	"image-binarizer/internal/histogram"
	"image-binarizer/internal/logger"
	"image-binarizer/internal/metadata"
	"image-binarizer/internal/metrics"
	"image-binarizer/internal/opencv/conversion"
	"image-binarizer/internal/opencv/memory"

	"gocv.io/x/gocv"
)

type Artifact struct {
	Kind string
	Path string
}

type Binarization struct {
	Method          string
	Threshold       float64
	Local           bool
	Separable       bool
	ForegroundRatio float64
	Path            string
	// Agreement is measured against the otsu output; nil for otsu itself.
	Agreement *metrics.Agreement
}

// RoleResult is everything one role produced, up to the stage it reached.
type RoleResult struct {
	Role          string
	Input         string
	Stage         Stage
	Err           error
	Report        *metadata.Report
	Binarizations []Binarization
	Artifacts     []Artifact
}

func (r RoleResult) Missing() bool {
	return errors.Is(r.Err, ErrMissingInput)
}

type Summary struct {
	OutputRoot string
	Results    []RoleResult
}

func (s Summary) Completed() int {
	n := 0
	for _, r := range s.Results {
		if r.Stage == StageDone {
			n++
		}
	}
	return n
}

// Coordinator runs the roles of a Config one after another.
type Coordinator struct {
	config           Config
	layout           Layout
	out              io.Writer
	logger           logger.Logger
	memoryManager    *memory.Manager
	algorithmManager *algorithms.Manager
	loader           ImageLoader
	saver            ImageSaver
	now              func() time.Time
}

func NewCoordinator(cfg Config, out io.Writer, log logger.Logger, memMgr *memory.Manager) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	coord := &Coordinator{
		config:           cfg,
		layout:           Layout{Root: cfg.OutputRoot},
		out:              out,
		logger:           log,
		memoryManager:    memMgr,
		algorithmManager: algorithms.NewManager(),
		loader:           &imageLoader{logger: log},
		saver:            &imageSaver{logger: log},
		now:              time.Now,
	}

	log.Info("PipelineCoordinator", "initialized", map[string]interface{}{
		"output_root": cfg.OutputRoot,
		"roles":       len(cfg.Roles),
	})
	return coord, nil
}

func (c *Coordinator) Layout() Layout {
	return c.layout
}

// Run prepares the output tree and processes every role. Only write
// failures abort the run; input problems stay confined to their role.
func (c *Coordinator) Run() (Summary, error) {
	summary := Summary{OutputRoot: c.config.OutputRoot}
	start := c.now()

	printHeader(c.out)

	fmt.Fprintln(c.out, "\nCreating output directories...")
	if err := c.layout.Prepare(c.config.Roles); err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "prepare_layout",
		})
		return summary, err
	}
	fmt.Fprintf(c.out, "✓ Output tree created at: %s\n", c.layout.Root)

	for _, role := range c.config.Roles {
		result, err := c.processRole(role)
		summary.Results = append(summary.Results, result)
		if err != nil {
			c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
				"role":  role.Name,
				"stage": result.Stage.String(),
			})
			return summary, err
		}
	}

	if c.config.WriteManifest {
		if err := writeManifest(c.layout.ManifestPath(), summary, c.now()); err != nil {
			return summary, err
		}
	}

	printFooter(c.out, c.layout, c.config.Roles)

	c.logger.Info("PipelineCoordinator", "run completed", map[string]interface{}{
		"roles":     len(summary.Results),
		"completed": summary.Completed(),
		"duration":  c.now().Sub(start),
	})

	return summary, nil
}

// processRole returns a non-nil error only for failures that must abort the run.
func (c *Coordinator) processRole(role Role) (RoleResult, error) {
	result := RoleResult{Role: role.Name, Input: role.InputPath, Stage: StageNotStarted}
	start := c.now()

	printRoleBanner(c.out, role.Name)

	img, err := c.loader.Load(role.InputPath)
	if err != nil {
		img.Close()
		c.fail(&result, err)
		return result, nil
	}

	scope := c.memoryManager.NewScope(role.Name)
	defer scope.Close()
	scope.Track("source", img)
	result.Stage = StageLoaded

	report, err := metadata.Describe(img)
	if err != nil {
		c.fail(&result, fmt.Errorf("metadata: %w", err))
		return result, nil
	}
	metadata.Print(c.out, role.Name, report)
	result.Report = &report
	result.Stage = StageMetadataReported

	fmt.Fprintln(c.out, "Decomposing image into RGB channels...")
	planes, err := channels.Split(img)
	if err != nil {
		c.fail(&result, fmt.Errorf("channel split: %w", err))
		return result, nil
	}
	for _, comp := range channels.Components {
		scope.Track("plane_"+comp.Letter(), planes.Get(comp))
	}
	for _, comp := range channels.Components {
		path := filepath.Join(c.layout.ChannelsDir(role.Name), channels.Filename(role.Name, comp))
		if err := c.save(&result, "channel-"+comp.Letter(), path, planes.Get(comp)); err != nil {
			return result, err
		}
	}
	fmt.Fprintf(c.out, "  ✓ RGB channels saved to: %s\n", c.layout.ChannelsDir(role.Name))
	result.Stage = StageChannelsWritten

	fmt.Fprintln(c.out, "Computing RGB channel histograms...")
	hists, err := histogram.ComputeRGB(planes)
	if err != nil {
		c.fail(&result, fmt.Errorf("histogram: %w", err))
		return result, nil
	}
	chartPath := filepath.Join(c.layout.HistogramsDir(role.Name), histogram.Filename(role.Name))
	if err := histogram.Render(chartPath, hists); err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrWriteFailed, chartPath, err)
		c.fail(&result, err)
		return result, err
	}
	result.Artifacts = append(result.Artifacts, Artifact{Kind: "histograms", Path: chartPath})
	c.logger.Debug("HistogramRenderer", "chart rendered", map[string]interface{}{
		"role": role.Name,
		"path": chartPath,
	})
	fmt.Fprintf(c.out, "  ✓ RGB histograms saved to: %s\n", c.layout.HistogramsDir(role.Name))
	result.Stage = StageHistogramsWritten

	fmt.Fprintln(c.out, "Converting to grayscale...")
	gray, err := conversion.ConvertToGrayscale(img)
	if err != nil {
		gray.Close()
		c.fail(&result, fmt.Errorf("grayscale: %w", err))
		return result, nil
	}
	scope.Track("grayscale", gray)
	if err := c.save(&result, "grayscale", c.layout.GrayscalePath(role.Name), gray); err != nil {
		return result, err
	}
	fmt.Fprintln(c.out, "  ✓ Grayscale image saved")
	result.Stage = StageGrayscaleWritten

	fmt.Fprintln(c.out, "Applying binarization methods...")
	if err := c.binarize(&result, scope, gray); err != nil {
		if errors.Is(err, ErrWriteFailed) {
			return result, err
		}
		c.fail(&result, err)
		return result, nil
	}
	result.Stage = StageBinarized

	result.Stage = StageDone
	fmt.Fprintf(c.out, "\n✓ Processing of '%s' completed successfully!\n\n", role.Name)

	c.logger.Info("PipelineCoordinator", "role processed", map[string]interface{}{
		"role":            role.Name,
		"artifacts":       len(result.Artifacts),
		"processing_time": c.now().Sub(start),
	})

	return result, nil
}

const referenceMethod = "otsu"

func (c *Coordinator) binarize(result *RoleResult, scope *memory.Scope, gray gocv.Mat) error {
	results, err := c.algorithmManager.ApplyAll(gray)
	if err != nil {
		return fmt.Errorf("binarization: %w", err)
	}
	for _, r := range results {
		scope.Track("binary_"+r.Method, r.Image)
	}

	var reference *algorithms.Result
	for i := range results {
		if results[i].Method == referenceMethod {
			reference = &results[i]
		}
	}

	dir := c.layout.BinarizedDir(result.Role)
	for i, alg := range c.algorithmManager.Algorithms() {
		r := results[i]
		path := filepath.Join(dir, alg.Filename(result.Role))
		if err := c.save(result, "binary-"+r.Method, path, r.Image); err != nil {
			return err
		}

		b := Binarization{
			Method:          r.Method,
			Threshold:       r.Threshold,
			Local:           r.Local,
			Separable:       r.Separable,
			ForegroundRatio: r.ForegroundRatio,
			Path:            path,
		}
		if reference != nil && r.Method != referenceMethod {
			agreement, err := metrics.Compare(reference.Image, r.Image)
			if err != nil {
				return fmt.Errorf("agreement %s: %w", r.Method, err)
			}
			b.Agreement = &agreement
		}
		result.Binarizations = append(result.Binarizations, b)

		c.logger.Debug("Binarizer", "method applied", map[string]interface{}{
			"role":             result.Role,
			"method":           r.Method,
			"threshold":        r.Threshold,
			"local":            r.Local,
			"foreground_ratio": r.ForegroundRatio,
		})
	}

	fmt.Fprintf(c.out, "  ✓ Binarized images saved to: %s\n", dir)
	printBinarizations(c.out, result.Binarizations)
	return nil
}

func (c *Coordinator) save(result *RoleResult, kind, path string, mat gocv.Mat) error {
	if err := c.saver.Save(path, mat); err != nil {
		c.fail(result, err)
		return err
	}
	result.Artifacts = append(result.Artifacts, Artifact{Kind: kind, Path: path})
	return nil
}

func (c *Coordinator) fail(result *RoleResult, err error) {
	from := result.Stage
	result.Stage = StageFailed
	result.Err = err

	fields := map[string]interface{}{
		"role":  result.Role,
		"input": result.Input,
		"stage": from.String(),
	}

	switch {
	case errors.Is(err, ErrMissingInput):
		c.logger.Warning("PipelineCoordinator", "input not found, skipping role", fields)
		fmt.Fprintf(c.out, "\nWARNING: image for '%s' not found.\n  Looked in: %s\n\n", result.Role, result.Input)
	case errors.Is(err, ErrWriteFailed):
		// Reported once by Run.
	default:
		c.logger.Error("PipelineCoordinator", err, fields)
		fmt.Fprintf(c.out, "ERROR: could not process '%s': %v\n", result.Role, err)
	}
}
