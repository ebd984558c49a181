package formatter

import "fmt"

// EncodeError reports a feed that could not be rendered as JSON.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode feed as JSON: %v", e.Err) }

func (e *EncodeError) Unwrap() error { return e.Err }

// IoError reports a failed write to a sink. Path is the file path, or
// "stdout" for the console.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }

func (e *IoError) Unwrap() error { return e.Err }
