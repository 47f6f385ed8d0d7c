package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWithFile_WritesToRotatingFile(t *testing.T) {
	dir := t.TempDir()

	logger, cleanup, err := NewWithFile(
		Config{Level: zerolog.InfoLevel, Format: "json"},
		FileConfig{Enabled: true, LogDir: dir},
	)
	require.NoError(t, err)

	logger.Info().Str("frame_id", "inspector").Msg("frame settled")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"frame_id":"inspector"`)
	assert.Contains(t, string(data), "frame settled")
}

func TestNewWithFile_NoSinkIsDisabled(t *testing.T) {
	logger, cleanup, err := NewWithFile(DefaultConfig(), FileConfig{})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestLogRotator_RotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, 1, 1)
	require.NoError(t, err)
	r.maxSize = 16

	for i := 0; i < 4; i++ {
		_, err := r.Write([]byte("0123456789abcdef\n"))
		require.NoError(t, err)
	}
	require.NoError(t, r.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if e.Name() != logFileName {
			backups++
		}
	}
	assert.LessOrEqual(t, backups, 1)
}

func TestWithFrameID_AddsField(t *testing.T) {
	dir := t.TempDir()
	logger, cleanup, err := NewWithFile(
		Config{Level: zerolog.DebugLevel, Format: "json"},
		FileConfig{Enabled: true, LogDir: dir},
	)
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "drag-frame")
	ctx = WithFrameID(ctx, "palette")
	FromContext(ctx).Debug().Msg("hello")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"drag-frame"`)
	assert.Contains(t, string(data), `"frame_id":"palette"`)
}
