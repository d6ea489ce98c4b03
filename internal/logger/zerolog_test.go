package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapter_JSONCarriesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Writer: &buf, Level: zerolog.InfoLevel, JSON: true})

	log.Info("ImageLoader", "image loaded", map[string]interface{}{"width": 100})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ImageLoader", entry["component"])
	assert.Equal(t, "image loaded", entry["message"])
	assert.Equal(t, float64(100), entry["width"])
	assert.Equal(t, "info", entry["level"])
}

func TestZerologAdapter_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Writer: &buf, Level: zerolog.InfoLevel, JSON: true})

	log.Error("PipelineCoordinator", errors.New("boom"), nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestZerologAdapter_DisabledLevelWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Writer: &buf, Level: zerolog.WarnLevel, JSON: true})

	log.Debug("MemoryManager", "stats", map[string]interface{}{"active": 1})
	log.Info("MemoryManager", "stats", nil)

	assert.Zero(t, buf.Len())
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Warning("X", "y", map[string]interface{}{"k": "v"})
		log.Error("X", errors.New("z"), nil)
	})
}

func TestParseFormat(t *testing.T) {
	isJSON, err := ParseFormat("json")
	require.NoError(t, err)
	assert.True(t, isJSON)

	isJSON, err = ParseFormat("")
	require.NoError(t, err)
	assert.False(t, isJSON)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
