package token

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	fieldSeparator = ":"
	fieldCount     = 5
)

var (
	// ErrInvalidToken is the uniform rejection for every bad access token:
	// wrong signature, expired, stale version, or unparsable. Callers must
	// not be able to learn which check failed.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrUnsafeField is returned at issuance when an identifier contains the
	// payload field separator. Issuance rejects rather than escapes so the
	// canonical payload stays unambiguous.
	ErrUnsafeField = errors.New("identifier contains reserved separator")
)

// VersionSource supplies the current per-user token version. Incrementing it
// elsewhere invalidates every token carrying an older snapshot.
type VersionSource interface {
	Get(ctx context.Context, userID string) (int64, error)
}

// Config defines a public type used by authkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	AccessTTL time.Duration
	Secret    []byte
}

// Identity is the (user, device) pair recovered from a verified token.
type Identity struct {
	UserID   string
	DeviceID string
	Version  int64
}

// Manager builds and checks access tokens against a [Signer] and an injected
// [VersionSource]. A Manager is immutable after construction and safe for
// concurrent use.
type Manager struct {
	ttl      time.Duration
	signer   *Signer
	versions VersionSource
	now      func() time.Time
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
// NewManager does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewManager(cfg Config, versions VersionSource) (*Manager, error) {
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if versions == nil {
		return nil, errors.New("version source required")
	}

	signer, err := NewSigner(cfg.Secret)
	if err != nil {
		return nil, err
	}

	return &Manager{
		ttl:      cfg.AccessTTL,
		signer:   signer,
		versions: versions,
		now:      time.Now,
	}, nil
}

// Issue creates a signed access token for the (user, device) pair, embedding
// the expiry and the user's current token version.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Issue(ctx context.Context, userID, deviceID string) (string, error) {
	if userID == "" || deviceID == "" {
		return "", ErrUnsafeField
	}
	if strings.Contains(userID, fieldSeparator) || strings.Contains(deviceID, fieldSeparator) {
		return "", ErrUnsafeField
	}

	version, err := m.versions.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	expiresAt := m.now().Add(m.ttl).UnixMilli()
	payload := buildPayload(userID, deviceID, expiresAt, version)
	signature := m.signer.Sign(payload)

	return base64.RawURLEncoding.EncodeToString([]byte(payload + fieldSeparator + signature)), nil
}

// Verify decodes and checks a token: shape, expiry, current version, then
// signature. Every rejection path returns [ErrInvalidToken]; only a
// [VersionSource] failure surfaces as a distinct (retryable) error, so store
// unavailability is never conflated with revocation.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Verify(ctx context.Context, tokenStr string) (Identity, error) {
	raw, err := base64.RawURLEncoding.DecodeString(tokenStr)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), fieldSeparator)
	if len(parts) != fieldCount {
		return Identity{}, ErrInvalidToken
	}

	userID, deviceID, signature := parts[0], parts[1], parts[4]
	if userID == "" || deviceID == "" {
		return Identity{}, ErrInvalidToken
	}

	expiresAt, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	version, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	if m.now().UnixMilli() >= expiresAt {
		return Identity{}, ErrInvalidToken
	}

	current, err := m.versions.Get(ctx, userID)
	if err != nil {
		return Identity{}, err
	}
	if version != current {
		return Identity{}, ErrInvalidToken
	}

	payload := buildPayload(userID, deviceID, expiresAt, version)
	if !m.signer.Verify(payload, signature) {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, DeviceID: deviceID, Version: version}, nil
}

func buildPayload(userID, deviceID string, expiresAt, version int64) string {
	return userID + fieldSeparator +
		deviceID + fieldSeparator +
		strconv.FormatInt(expiresAt, 10) + fieldSeparator +
		strconv.FormatInt(version, 10)
}
