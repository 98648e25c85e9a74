package internal

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// refreshTokenRawSize is the entropy of a refresh token before encoding.
const refreshTokenRawSize = 48

// NewRefreshToken returns a fresh hex-encoded opaque refresh token backed by
// 48 bytes of CSPRNG output.
func NewRefreshToken() (string, error) {
	var raw [refreshTokenRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}

// NewDeviceID assigns a device identifier for clients that did not choose
// their own at login.
func NewDeviceID() string {
	return uuid.NewString()
}
