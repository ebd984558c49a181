package formatter

import (
	"bytes"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	json "github.com/goccy/go-json"
	"google.golang.org/protobuf/encoding/protojson"
)

// JSONOptions mirror the protobuf JSON mapping options exposed in config.
type JSONOptions struct {
	Indent          string // empty renders compact JSON
	UseProtoNames   bool   // trip_id instead of tripId
	EmitUnpopulated bool
}

// JSONFormatter renders FeedMessages using the protobuf JSON mapping.
type JSONFormatter struct {
	opts    JSONOptions
	marshal protojson.MarshalOptions
}

// NewJSONFormatter creates a formatter for the given options
func NewJSONFormatter(opts JSONOptions) *JSONFormatter {
	return &JSONFormatter{
		opts: opts,
		marshal: protojson.MarshalOptions{
			UseProtoNames:   opts.UseProtoNames,
			EmitUnpopulated: opts.EmitUnpopulated,
		},
	}
}

// Format serializes fm. protojson deliberately varies its whitespace between
// builds, so its output is compacted and re-indented here; the same message
// always yields the same bytes. The result ends with a newline.
func (f *JSONFormatter) Format(fm *gtfsrtpb.FeedMessage) ([]byte, error) {
	raw, err := f.marshal.Marshal(fm)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, &EncodeError{Err: err}
	}
	if f.opts.Indent == "" {
		compact.WriteByte('\n')
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", f.opts.Indent); err != nil {
		return nil, &EncodeError{Err: err}
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
