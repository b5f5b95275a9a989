package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := build(Options{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestBuild_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := build(Options{Production: true}, &buf)
	require.NoError(t, err)

	logger.Info("order placed")
	_ = logger.Sync()

	assert.Contains(t, buf.String(), `"msg":"order placed"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestBuild_BadLevel(t *testing.T) {
	_, err := build(Options{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestBuild_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.log")
	var buf bytes.Buffer
	logger, err := build(Options{File: path}, &buf)
	require.NoError(t, err)

	logger.Info("cart cleared")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"cart cleared"`)
	assert.Contains(t, buf.String(), "cart cleared")
}
