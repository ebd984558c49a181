package gtfsrt

import "fmt"

// TransportError reports a failed fetch: an unusable URL, a network error or
// a non-success HTTP status. StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports bytes that do not conform to the GTFS-RT schema.
type DecodeError struct {
	Size int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %d bytes as GTFS-RT FeedMessage: %v", e.Size, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
