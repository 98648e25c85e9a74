// Package audit carries the session lifecycle event stream: every login,
// refresh, verification failure, logout, and version bump the engine performs
// can be observed here without touching the hot paths that produced it.
//
// Events flow through a [Dispatcher] into a pluggable [Sink]. The dispatcher
// is bounded: in drop mode backpressure discards events and counts them in
// [Dispatcher.Dropped], in blocking mode the emitting operation waits. Events
// identify sessions by (user, device) pair and never contain token material.
package audit
