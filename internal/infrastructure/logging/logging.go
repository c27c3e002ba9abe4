// Package logging configures the process-wide console logger.
package logging

import (
	"fmt"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

// New returns a console logger writing colorized, severity-tagged output
// to stderr. Progress text printed by the command layer stays on stdout,
// so the two streams can be separated.
func New(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	w := zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStderr(),
		TimeFormat: "15:04:05",
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
