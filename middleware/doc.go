// Package middleware exposes HTTP middleware adapters for bearer-token enforcement
// built on top of authkit.Engine verification.
//
// # Guards
//
//   - [Guard] — verifies the Authorization bearer token and injects the verified
//     identity into the request context.
//   - [WithRequestMetadata] — copies the client IP and an optional fingerprint
//     payload into the request context for audit enrichment.
//
// [Guard] reads the Authorization header, calls Engine.VerifyAccess, and injects
// the resulting [authkit.AuthResult] into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT implement
// authentication logic itself — all decisions are delegated to Engine.VerifyAccess.
//
// # What this package must NOT do
//
//   - Parse or verify tokens directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.VerifyAccess.
package middleware
