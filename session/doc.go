// Package session provides the Redis-backed mutable state behind the token
// service: per-user token version counters and per-device refresh token
// records.
//
// # Key layout
//
//   - tokenVersion:<userID>          → integer counter (no TTL)
//   - refresh:<userID>:<deviceID>    → JSON {refreshToken, expiresAt}, TTL-bound
//
// The refresh record's store TTL always equals its embedded deadline, so an
// entry can never outlive itself even if lazy cleanup is skipped.
//
// # Concurrency
//
// Every mutation is a single Redis primitive: INCR for version bumps, SET
// with TTL for refresh issuance, DEL for revocation. No in-process locking
// exists or is needed. RevokeAll is the one multi-key operation (SCAN then
// bulk DEL); a record issued concurrently mid-scan survives and is closed by
// its own TTL, which is the documented eventually-revoked semantics.
//
// # What this package must NOT do
//
//   - Interpret access tokens or enforce authentication policy — that is the
//     Engine's job.
//   - Return plaintext refresh tokens except at issuance.
package session
