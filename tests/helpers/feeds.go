// Package helpers builds GTFS-RT fixtures for tests across packages.
package helpers

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// NewFeed returns an empty FULL_DATASET feed stamped with timestamp.
func NewFeed(timestamp uint64) *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(timestamp),
		},
	}
}

// TripUpdateEntity builds an entity with a single trip update for tripID.
func TripUpdateEntity(id, tripID string, timestamp uint64) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip: &gtfsrtpb.TripDescriptor{
				TripId: proto.String(tripID),
			},
			Timestamp: proto.Uint64(timestamp),
		},
	}
}

// VehicleEntity builds a vehicle position entity on tripID.
func VehicleEntity(id, tripID, vehicleID string, lat, lon float32) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		Vehicle: &gtfsrtpb.VehiclePosition{
			Trip: &gtfsrtpb.TripDescriptor{
				TripId: proto.String(tripID),
			},
			Vehicle: &gtfsrtpb.VehicleDescriptor{
				Id: proto.String(vehicleID),
			},
			Position: &gtfsrtpb.Position{
				Latitude:  proto.Float32(lat),
				Longitude: proto.Float32(lon),
			},
		},
	}
}

// AlertEntity builds an alert informing routeID.
func AlertEntity(id, routeID, header string) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		Alert: &gtfsrtpb.Alert{
			InformedEntity: []*gtfsrtpb.EntitySelector{
				{RouteId: proto.String(routeID)},
			},
			HeaderText: &gtfsrtpb.TranslatedString{
				Translation: []*gtfsrtpb.TranslatedString_Translation{
					{Text: proto.String(header)},
				},
			},
		},
	}
}

// SampleTripUpdateFeed is the canonical one-entity feed: trip "T1" at 1000.
func SampleTripUpdateFeed() *gtfsrtpb.FeedMessage {
	fm := NewFeed(1000)
	fm.Entity = append(fm.Entity, TripUpdateEntity("E1", "T1", 1000))
	return fm
}

// MixedFeed carries one entity of each variant.
func MixedFeed() *gtfsrtpb.FeedMessage {
	fm := NewFeed(1700000000)
	fm.Entity = append(fm.Entity,
		TripUpdateEntity("tu-1", "T1", 1700000000),
		VehicleEntity("vp-1", "T1", "V42", 40.7128, -74.006),
		AlertEntity("al-1", "J", "Delays on the J"),
	)
	return fm
}

// Marshal encodes fm to wire bytes, failing the test on error.
func Marshal(t testing.TB, fm *gtfsrtpb.FeedMessage) []byte {
	t.Helper()
	b, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	return b
}
