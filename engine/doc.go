// Package engine defines the query contract this application expects from
// the external transit-data engine: filterable getters over the static GTFS
// dataset, realtime overlays merged into stop-time results, and a handful of
// actions (realtime refresh, active-service lookup, database export).
//
// The engine itself — parsing, storage, indexing — lives on the other side of
// a remote-call boundary (see the remote subpackage). This package only holds
// the record types, the filter descriptors, and the Engine interface.
package engine
