// Package gtfsrt fetches and decodes GTFS-Realtime protobuf feeds.
//
// A feed is fetched as raw bytes by Client and decoded with the
// MobilityData bindings into a FeedMessage. Decoding is all-or-nothing:
// a feed that does not match the schema yields a DecodeError and no message.
//
// Summarize reports what a decoded feed carries:
//   - Trip Updates: real-time arrival/departure predictions
//   - Vehicle Positions: current vehicle locations
//   - Service Alerts: disruptions and service changes
package gtfsrt
