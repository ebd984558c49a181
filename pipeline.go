package gtfsrtjson

import (
	"context"
	"errors"
	"io"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/charmbracelet/log"

	"github.com/theoremus-urban-solutions/gtfsrt-to-json/formatter"
	"github.com/theoremus-urban-solutions/gtfsrt-to-json/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-to-json/utils"
)

// Fetcher retrieves the raw feed bytes for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Decoder turns raw bytes into a FeedMessage.
type Decoder interface {
	Decode(b []byte) (*gtfsrtpb.FeedMessage, error)
}

// Emitter renders a FeedMessage and writes it to its sinks, returning the
// bytes written.
type Emitter interface {
	Emit(fm *gtfsrtpb.FeedMessage) ([]byte, error)
}

// State is a step of a pipeline run.
type State int

const (
	StateFetching State = iota
	StateDecoding
	StateEmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateDecoding:
		return "decoding"
	case StateEmitting:
		return "emitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result describes a finished run, successful or not.
type Result struct {
	State     State
	FeedBytes int            // size of the fetched body
	Summary   gtfsrt.Summary // zero unless decoding succeeded
	Output    []byte         // JSON text written to the sinks, nil on failure
}

// Pipeline runs Fetching -> Decoding -> Emitting -> Done once. Any stage may
// move it to Failed; there is no retry.
type Pipeline struct {
	url     string
	fetcher Fetcher
	decoder Decoder
	emitter Emitter
	logger  *log.Logger
}

// NewPipeline wires the three stages. A nil logger discards log output.
func NewPipeline(url string, f Fetcher, d Decoder, e Emitter, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		url:     url,
		fetcher: f,
		decoder: d,
		emitter: e,
		logger:  logger,
	}
}

// Run executes the pipeline. On failure the returned error is an *Error and
// the Result is in StateFailed with no Output.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	p.enter(res, StateFetching)
	raw, err := guard(func() ([]byte, error) { return p.fetcher.Fetch(ctx, p.url) })
	if err != nil {
		return res, p.fail(res, KindTransport, err)
	}
	res.FeedBytes = len(raw)
	p.logger.Debug("fetched feed", "url", p.url, "bytes", len(raw))

	p.enter(res, StateDecoding)
	fm, err := guard(func() (*gtfsrtpb.FeedMessage, error) { return p.decoder.Decode(raw) })
	if err != nil {
		return res, p.fail(res, KindDecode, err)
	}
	res.Summary = gtfsrt.Summarize(fm)
	p.logSummary(res)

	p.enter(res, StateEmitting)
	out, err := guard(func() ([]byte, error) { return p.emitter.Emit(fm) })
	if err != nil {
		return res, p.fail(res, emitKind(err), err)
	}
	res.Output = out

	p.enter(res, StateDone)
	return res, nil
}

func (p *Pipeline) enter(res *Result, s State) {
	res.State = s
	p.logger.Debug("state", "state", s.String())
}

func (p *Pipeline) fail(res *Result, kind ErrorKind, err error) error {
	var pe *panicError
	if errors.As(err, &pe) {
		kind = KindInternal
	}
	failed := &Error{Kind: kind, State: res.State, Err: err}
	res.State = StateFailed
	res.Output = nil
	p.logger.Debug("state", "state", StateFailed.String(), "kind", string(kind), "stage", failed.State.String())
	return failed
}

func (p *Pipeline) logSummary(res *Result) {
	s := res.Summary
	kv := []any{
		"version", s.Version,
		"incrementality", s.Incrementality,
		"entities", s.Entities,
		"tripUpdates", s.TripUpdates,
		"vehicles", s.Vehicles,
		"alerts", s.Alerts,
		"trips", s.Trips,
	}
	if s.Timestamp > 0 {
		kv = append(kv,
			"feedTimestamp", utils.Iso8601FromUnixSeconds(s.Timestamp),
			"age", utils.FeedAge(s.Timestamp, time.Now()).Round(time.Second),
		)
	}
	p.logger.Info("decoded feed", kv...)
}

// emitKind separates sink failures from rendering failures.
func emitKind(err error) ErrorKind {
	var ioErr *formatter.IoError
	if errors.As(err, &ioErr) {
		return KindIO
	}
	var encErr *formatter.EncodeError
	if errors.As(err, &encErr) {
		return KindDecode
	}
	return KindInternal
}

// guard runs a stage, converting a panic into an error.
func guard[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return fn()
}
