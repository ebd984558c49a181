package gtfsrt

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// Summary describes what a decoded feed carries
type Summary struct {
	Version        string
	Incrementality string
	Timestamp      int64 // header timestamp, POSIX seconds; 0 if absent

	Entities    int
	Deleted     int
	TripUpdates int
	Vehicles    int
	Alerts      int
	Trips       int // distinct trip_ids across trip updates and vehicle positions
}

// Summarize walks fm once and counts entities by variant. An entity may
// carry more than one variant and is counted for each.
func Summarize(fm *gtfsrtpb.FeedMessage) Summary {
	var s Summary
	if fm == nil {
		return s
	}
	if h := fm.GetHeader(); h != nil {
		s.Version = h.GetGtfsRealtimeVersion()
		s.Incrementality = h.GetIncrementality().String()
		s.Timestamp = int64(h.GetTimestamp())
	}

	trips := map[string]struct{}{}
	for _, e := range fm.GetEntity() {
		s.Entities++
		if e.GetIsDeleted() {
			s.Deleted++
		}
		if tu := e.GetTripUpdate(); tu != nil {
			s.TripUpdates++
			if id := tu.GetTrip().GetTripId(); id != "" {
				trips[id] = struct{}{}
			}
		}
		if vp := e.GetVehicle(); vp != nil {
			s.Vehicles++
			if id := vp.GetTrip().GetTripId(); id != "" {
				trips[id] = struct{}{}
			}
		}
		if e.GetAlert() != nil {
			s.Alerts++
		}
	}
	s.Trips = len(trips)
	return s
}
