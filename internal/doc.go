// Package internal contains helper utilities that are intentionally private
// to authkit, including secure random generation for refresh tokens and
// device identifiers.
//
// # Sub-packages
//
//   - audit — async event dispatch (Dispatcher + Sink implementations)
//
// # What this package must NOT do
//
//   - Export types that appear in the public authkit API.
//   - Be imported by any package outside the authkit module.
package internal
