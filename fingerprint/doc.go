// Package fingerprint models the advisory device fingerprint: a stable hash
// over browser/device attributes used to recognize a device across requests
// without persistent cookies.
//
// A fingerprint is a correlation signal, never a credential. Nothing in this
// package may gate access; the Engine only logs and compares hashes.
//
// # Stability
//
// The hash covers a fixed, ordered subset of attributes. Volatile signals
// (current IP addresses, live network quality) are carried in
// [Components] for display and audit but are excluded from the hash, so the
// fingerprint survives network changes.
package fingerprint
