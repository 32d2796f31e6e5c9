package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// newLogger writes to w with short timestamps and drops messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "nbody",
	})

	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	logger.SetStyles(styles)
	return logger
}
