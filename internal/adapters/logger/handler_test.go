package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zmkbuild/internal/adapters/logger"
)

func TestPrettyHandler_RendersMessageOnly(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	log := slog.New(logger.NewPrettyHandler(buf, nil))

	log.With("shield", "corne_left").WithGroup("build").Info("Building", "board", "nice_nano_v2")
	log.Error("build failed", "exit_code", 2)

	assert.Equal(t, "Building\n✗ build failed\n", buf.String())
}

func TestPrettyHandler_Level(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	log := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("Source file not found")

	assert.Equal(t, "! Source file not found\n", buf.String())
}
