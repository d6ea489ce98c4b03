package memory

import (
	"image-binarizer/internal/logger"
	"image-binarizer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Manager accounts for the native Mats allocated while processing roles.
// Mats are owned by a Scope and released together when the Scope closes.
type Manager struct {
	logger       logger.Logger
	allocCount   int64
	deallocCount int64
	usedMemory   int64
	peakMemory   int64
	openScopes   map[string]*Scope
}

type Scope struct {
	manager *Manager
	name    string
	mats    []trackedMat
	closed  bool
}

type trackedMat struct {
	tag  string
	mat  gocv.Mat
	size int64
}

func NewManager(log logger.Logger) *Manager {
	return &Manager{
		logger:     log,
		openScopes: make(map[string]*Scope),
	}
}

func (m *Manager) NewScope(name string) *Scope {
	scope := &Scope{manager: m, name: name}
	m.openScopes[name] = scope
	return scope
}

// Track hands ownership of mat to the scope and returns it unchanged.
func (s *Scope) Track(tag string, mat gocv.Mat) gocv.Mat {
	size := int64(0)
	if !mat.Empty() {
		size = int64(mat.Rows() * mat.Cols() * safe.MatTypeSize(mat.Type()))
	}

	s.mats = append(s.mats, trackedMat{tag: tag, mat: mat, size: size})

	m := s.manager
	m.allocCount++
	m.usedMemory += size
	if m.usedMemory > m.peakMemory {
		m.peakMemory = m.usedMemory
	}

	return mat
}

func (s *Scope) Len() int {
	return len(s.mats)
}

// Close releases every tracked Mat in reverse allocation order. Safe to call twice.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true

	m := s.manager
	var released int64
	for i := len(s.mats) - 1; i >= 0; i-- {
		tm := s.mats[i]
		if err := tm.mat.Close(); err != nil {
			m.logger.Warning("MemoryManager", "failed to release Mat", map[string]interface{}{
				"scope": s.name,
				"tag":   tm.tag,
				"error": err.Error(),
			})
			continue
		}
		m.deallocCount++
		m.usedMemory -= tm.size
		released += tm.size
	}

	m.logger.Debug("MemoryManager", "scope released", map[string]interface{}{
		"scope":          s.name,
		"mats":           len(s.mats),
		"released_bytes": released,
	})

	s.mats = nil
	delete(m.openScopes, s.name)
}

func (m *Manager) GetStats() (allocCount, deallocCount int64, usedMemory int64) {
	return m.allocCount, m.deallocCount, m.usedMemory
}

func (m *Manager) PeakMemory() int64 {
	return m.peakMemory
}

// Cleanup closes scopes left open and logs the final accounting.
func (m *Manager) Cleanup() {
	for name, scope := range m.openScopes {
		m.logger.Warning("MemoryManager", "cleaning up unreleased scope", map[string]interface{}{
			"scope": name,
			"mats":  scope.Len(),
		})
		scope.Close()
	}

	m.logger.Info("MemoryManager", "cleanup completed", map[string]interface{}{
		"allocations":   m.allocCount,
		"deallocations": m.deallocCount,
		"peak_bytes":    m.peakMemory,
	})
}
