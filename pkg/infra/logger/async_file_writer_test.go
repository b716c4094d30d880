package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orgpulse/orgpulse/pkg/infra/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncFileWriter_DrainsOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := logger.NewAsyncFileWriter(path, 32*1024)
	require.NoError(t, err)

	_, err = w.Write([]byte("first line\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second line\n"))
	require.NoError(t, err)

	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first line")
	assert.Contains(t, string(data), "second line")
	assert.Zero(t, w.Dropped())
}

func TestAsyncFileWriter_CopiesTheLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := logger.NewAsyncFileWriter(path, 32*1024)
	require.NoError(t, err)

	line := []byte("original\n")
	_, err = w.Write(line)
	require.NoError(t, err)
	copy(line, "mutated!\n")

	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "original")
	assert.NotContains(t, string(data), "mutated")
}
