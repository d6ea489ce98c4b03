package algorithms

import (
	"fmt"

	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const (
	MaxValue = 255

	FixedThreshold = 127

	AdaptiveBlockSize = 11
	AdaptiveOffset    = 2
)

// Algorithm turns a grayscale Mat into a binary {0, 255} Mat.
type Algorithm interface {
	GetName() string
	Filename(role string) string
	Apply(gray gocv.Mat) (Result, error)
}

type Result struct {
	Method string
	Image  gocv.Mat
	// Threshold is the global cut-off; meaningless when Local is set.
	Threshold float64
	Local     bool
	// Separable is false only for a global-optimal threshold computed on a
	// single-intensity image.
	Separable       bool
	ForegroundRatio float64
}

func (r Result) Close() {
	r.Image.Close()
}

// Manager keeps the binarization methods in their reporting order.
type Manager struct {
	algorithms []Algorithm
	byName     map[string]Algorithm
}

func NewManager() *Manager {
	manager := &Manager{byName: make(map[string]Algorithm)}
	manager.registerAlgorithms()
	return manager
}

func (m *Manager) registerAlgorithms() {
	m.register(NewFixed(FixedThreshold))
	m.register(NewOtsu())
	m.register(NewAdaptive(AdaptiveGaussian, AdaptiveBlockSize, AdaptiveOffset))
	m.register(NewAdaptive(AdaptiveMean, AdaptiveBlockSize, AdaptiveOffset))
}

func (m *Manager) register(alg Algorithm) {
	m.algorithms = append(m.algorithms, alg)
	m.byName[alg.GetName()] = alg
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	if alg, exists := m.byName[name]; exists {
		return alg, nil
	}
	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

func (m *Manager) GetAvailableAlgorithms() []string {
	names := make([]string, 0, len(m.algorithms))
	for _, alg := range m.algorithms {
		names = append(names, alg.GetName())
	}
	return names
}

func (m *Manager) Algorithms() []Algorithm {
	return append([]Algorithm(nil), m.algorithms...)
}

// ApplyAll runs every method in order. On failure the results produced so
// far are released.
func (m *Manager) ApplyAll(gray gocv.Mat) ([]Result, error) {
	if err := validateGray(gray); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(m.algorithms))
	for _, alg := range m.algorithms {
		res, err := alg.Apply(gray)
		if err != nil {
			for _, r := range results {
				r.Close()
			}
			return nil, fmt.Errorf("%s binarization failed: %w", alg.GetName(), err)
		}
		results = append(results, res)
	}

	return results, nil
}

func validateGray(gray gocv.Mat) error {
	if err := safe.ValidateChannels(gray, 1, "binarization"); err != nil {
		return err
	}
	return safe.ValidateUint8(gray, "binarization")
}

func foregroundRatio(binary gocv.Mat) float64 {
	total := binary.Rows() * binary.Cols()
	if total == 0 {
		return 0
	}
	return float64(gocv.CountNonZero(binary)) / float64(total)
}
