// Package gtfsrtjson fetches a GTFS-Realtime feed, decodes it with the
// GTFS-RT schema and writes its JSON rendering to the console and a file.
//
// A run is a Pipeline: Fetching, Decoding, Emitting, Done, with Failed
// reachable from every stage. Failures come back as *Error classified as
// transport, decode, io or internal.
package gtfsrtjson
