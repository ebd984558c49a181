package gtfsrtjson

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// LogTimeFormat matches the standard library's LstdFlags|Lmicroseconds.
const LogTimeFormat = "2006/01/02 15:04:05.000000"

// InitLogging builds the process logger writing to w. The CLI passes stderr
// so stdout carries only JSON.
func InitLogging(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		lvl = parsed
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      LogTimeFormat,
		Prefix:          "gtfsrt-to-json",
	})
	return logger, nil
}
