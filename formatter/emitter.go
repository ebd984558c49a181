package formatter

import (
	"io"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// ConsoleSink is the Path reported by IoError for console write failures.
const ConsoleSink = "stdout"

// Emitter writes a rendered feed to the console and to a file.
type Emitter struct {
	formatter *JSONFormatter
	console   io.Writer
	path      string
}

// NewEmitter creates an emitter writing to console and path.
func NewEmitter(f *JSONFormatter, console io.Writer, path string) *Emitter {
	return &Emitter{formatter: f, console: console, path: path}
}

// Emit renders fm once and writes the same bytes to the console, then
// overwrites the output file. Nothing is written if rendering fails.
func (e *Emitter) Emit(fm *gtfsrtpb.FeedMessage) ([]byte, error) {
	text, err := e.formatter.Format(fm)
	if err != nil {
		return nil, err
	}

	if _, err := e.console.Write(text); err != nil {
		return nil, &IoError{Path: ConsoleSink, Err: err}
	}
	if err := WriteFileAtomic(e.path, text, 0o644); err != nil {
		return nil, &IoError{Path: e.path, Err: err}
	}
	return text, nil
}
