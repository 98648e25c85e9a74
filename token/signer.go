package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// MinSecretSize is the smallest accepted signing secret: 256 bits.
const MinSecretSize = 32

// ErrWeakSecret is returned by [NewSigner] when the secret is shorter than
// [MinSecretSize] bytes.
var ErrWeakSecret = errors.New("signing secret must be at least 256 bits")

// Signer computes and checks HMAC-SHA256 signatures over canonical payload
// strings. It holds the symmetric secret and nothing else; signing is a pure
// function with no I/O.
type Signer struct {
	secret []byte
}

// NewSigner creates a [Signer] from a symmetric secret of at least 256 bits.
// The secret is copied; the caller may zero its slice afterwards.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) < MinSecretSize {
		return nil, ErrWeakSecret
	}

	s := make([]byte, len(secret))
	copy(s, secret)
	return &Signer{secret: s}, nil
}

// Sign returns the hex-encoded HMAC-SHA256 of payload. It never fails.
func (s *Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the valid hex-encoded HMAC-SHA256 of
// payload. The comparison is constant-time via [hmac.Equal]. Malformed input
// returns false rather than an error, so callers cannot tell a bad signature
// from an unparsable one.
func (s *Signer) Verify(payload, signature string) bool {
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hmac.Equal(mac.Sum(nil), provided)
}
