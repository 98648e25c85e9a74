package authkit

import (
	"errors"

	"github.com/verisent/authkit/session"
)

var (
	// ErrInvalidCredential is an exported constant or variable used by the session engine.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInvalidIdentifier is an exported constant or variable used by the session engine.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrEngineNotReady is an exported constant or variable used by the session engine.
	ErrEngineNotReady = errors.New("engine not initialized")

	// ErrStoreUnavailable marks transient Redis failures. Callers should
	// retry; it never means the credential was rejected.
	ErrStoreUnavailable = session.ErrStoreUnavailable
)
