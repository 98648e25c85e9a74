// Package authkit provides a session and identity token service: stateless
// HMAC-signed access tokens, per-device opaque refresh tokens, and
// Redis-backed instant revocation through a per-user token version counter.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authkit is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (LoginResult, AuthResult, MetricsSnapshot, etc.). Token
// encoding lives in the token package, Redis persistence in the session
// package, fingerprinting in the fingerprint package, and audit dispatch
// under internal/.
//
// # What this package must NOT do
//
//   - Verify passwords or hold user records: Login takes an already
//     authenticated userID.
//   - Expose Redis clients, store key layouts, or token wire details in its
//     public API.
//   - Treat a store outage as a revoked credential: [ErrStoreUnavailable]
//     and [ErrInvalidCredential] are always distinct.
//
// # Performance contract
//
// VerifyAccess is the hot path: one Redis GET for the version counter and no
// other I/O. Login and Refresh are allowed one additional Redis round-trip
// for the refresh record. LogoutAll is the only SCAN-bearing operation.
package authkit
