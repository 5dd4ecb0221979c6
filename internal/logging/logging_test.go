package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"option-pricer/internal/models"
)

func TestLogQuote(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogQuote(logger, models.OptionQuote{Inputs: models.DemoInputs(), Call: 10.45, Put: 5.57})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "quote", entry["event"])
	assert.Equal(t, 100.0, entry["spot"])
	assert.Equal(t, 10.45, entry["call"])
	assert.Equal(t, "Quote priced", entry["message"])
}

func TestLogStoreWriteError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogStoreWrite(logger, 3, time.Millisecond, errors.New("disk full"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, 3.0, entry["count"])
}

func TestNewLoggerWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pricer.log")
	logger := NewLoggerWithConfig(LogConfig{
		Level:    "warn",
		File:     true,
		FilePath: path,
		MaxSize:  1,
	})

	logger.Info().Msg("filtered")
	logger.Warn().Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "filtered")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithOperation(zerolog.New(&buf), "ladder")

	ctx := WithLogger(context.Background(), logger)
	l := FromContext(ctx)
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"operation":"ladder"`)

	// A bare context yields a no-op logger.
	l = FromContext(context.Background())
	l.Info().Msg("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
