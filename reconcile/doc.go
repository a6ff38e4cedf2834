// Package reconcile merges scheduled GTFS records with realtime overlays:
// schedule-time parsing (including post-midnight HH >= 24 times), effective
// arrival/departure resolution from delay or absolute-timestamp signals, and
// vehicle-to-stop matching with chord-based progress interpolation.
//
// Everything here is a pure function over already-fetched data. Nothing
// blocks, nothing touches shared state, so callers may reconcile concurrent
// snapshots freely.
package reconcile
