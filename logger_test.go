package main

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.WarnLevel)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("swap panes", "err", "index out of range")
	out := buf.String()
	assert.Contains(t, out, "nbody")
	assert.Contains(t, out, "swap panes")
	assert.Contains(t, out, "index out of range")
}
