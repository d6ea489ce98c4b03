package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"image-binarizer/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempConfig(t *testing.T) pipeline.Config {
	t.Helper()
	tmp := t.TempDir()
	cfg := pipeline.DefaultConfig()
	cfg.OutputRoot = filepath.Join(tmp, cfg.OutputRoot)
	for i := range cfg.Roles {
		cfg.Roles[i].InputPath = filepath.Join(tmp, cfg.Roles[i].InputPath)
	}
	return cfg
}

func TestRootCmd_MissingInputsStillSucceed(t *testing.T) {
	cfg := tempConfig(t)
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr, cfg)
	cmd.SetArgs([]string{"--log-format", "json"})
	require.NoError(t, cmd.Execute())

	assert.DirExists(t, filepath.Join(cfg.OutputRoot, "pessoa", "binarized"))
	assert.FileExists(t, filepath.Join(cfg.OutputRoot, "manifest.yaml"))
	assert.Contains(t, stderr.String(), `"level":"warn"`)
	assert.NotEmpty(t, stdout.String())
}

func TestRootCmd_NoManifest(t *testing.T) {
	cfg := tempConfig(t)

	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	cmd.SetArgs([]string{"--no-manifest"})
	require.NoError(t, cmd.Execute())

	assert.NoFileExists(t, filepath.Join(cfg.OutputRoot, "manifest.yaml"))
}

func TestRootCmd_RejectsUnknownLogFormat(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{}, tempConfig(t))
	cmd.SetArgs([]string{"--log-format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{}, tempConfig(t))
	cmd.SetArgs([]string{"photo.jpg"})
	assert.Error(t, cmd.Execute())
}

func TestRootCmd_WriteFailureReturnsError(t *testing.T) {
	cfg := tempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.OutputRoot), 0o755))
	require.NoError(t, os.WriteFile(cfg.OutputRoot, nil, 0o644))

	var stderr bytes.Buffer
	cmd := newRootCmd(&bytes.Buffer{}, &stderr, cfg)
	cmd.SetArgs([]string{"--debug"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, pipeline.ErrWriteFailed)
	assert.True(t, strings.Contains(stderr.String(), "CLI"))
}
