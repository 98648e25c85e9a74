package authkit

import (
	"io"

	internalaudit "github.com/verisent/authkit/internal/audit"
	"github.com/verisent/authkit/session"
)

// LoginResult is returned by [Engine.Login]. DeviceID echoes the caller's
// device identifier, or the server-assigned one when the caller sent none.
type LoginResult struct {
	UserID       string
	DeviceID     string
	AccessToken  string
	RefreshToken string
}

// RefreshResult is returned by [Engine.Refresh]. RefreshToken is the token
// the device must present next time: the original one by default, a fresh
// one when rotation-on-use is enabled.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
	Rotated      bool
}

// AuthResult is returned by [Engine.VerifyAccess]. It carries the identity
// recovered from a valid access token.
type AuthResult struct {
	UserID       string
	DeviceID     string
	TokenVersion int64
}

// DeviceSession is one device's live refresh credential, as enumerated by
// [Engine.ActiveDevices].
type DeviceSession = session.DeviceSession

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine’s audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
