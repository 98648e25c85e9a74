// Package token issues and verifies the signed, stateless access tokens used as
// bearer credentials, and owns the HMAC signing primitive behind them.
//
// # Wire format
//
// An access token is base64url(userID:deviceID:expiresAtMillis:version:signature)
// where signature is hex-encoded HMAC-SHA256 over the four preceding fields.
// The format is opaque to clients; servers never hand fields back out of it.
//
// # Architecture boundaries
//
// This package couples a stateless token to one piece of mutable shared state:
// the per-user token version, read through the [VersionSource] interface.
// It never touches refresh-token storage — verification stays a single
// counter read so the hot path scales without coordination.
//
// # What this package must NOT do
//
//   - Distinguish rejection reasons to callers (every bad token is
//     [ErrInvalidToken], malformed or forged alike).
//   - Import the session package or any Redis client directly.
package token
