package gtfsrt

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Decode parses raw protobuf bytes into a FeedMessage. Required fields are
// enforced, so an empty or truncated body fails instead of producing a
// partially populated message.
func Decode(b []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, &DecodeError{Size: len(b), Err: err}
	}
	return &fm, nil
}

// Decoder adapts Decode to a method value for callers that hold a decoder
// as a dependency.
type Decoder struct{}

// Decode parses b, see the package-level Decode.
func (Decoder) Decode(b []byte) (*gtfsrtpb.FeedMessage, error) { return Decode(b) }
