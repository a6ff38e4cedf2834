// Package remote implements the engine.Engine contract over a NATS
// request/reply boundary. Each query is one named operation with JSON-encoded
// arguments; the engine worker replies on a per-request inbox with zero or
// more progress messages followed by exactly one result or error.
package remote
