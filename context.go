package authkit

import (
	"context"

	"github.com/verisent/authkit/fingerprint"
)

type clientIPContextKey struct{}
type fingerprintContextKey struct{}

// WithClientIP attaches the caller’s IP address to ctx. The Engine records it
// in audit events for correlation.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// ClientIPFromContext returns the IP attached by [WithClientIP], or "".
func ClientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

// WithFingerprint attaches an advisory device fingerprint to ctx. The Engine
// logs its hash in audit events; it never gates any operation.
func WithFingerprint(ctx context.Context, fp *fingerprint.Fingerprint) context.Context {
	return context.WithValue(ctx, fingerprintContextKey{}, fp)
}

// FingerprintFromContext returns the fingerprint attached by
// [WithFingerprint], or nil.
func FingerprintFromContext(ctx context.Context) *fingerprint.Fingerprint {
	if ctx == nil {
		return nil
	}

	fp, _ := ctx.Value(fingerprintContextKey{}).(*fingerprint.Fingerprint)
	return fp
}

func fingerprintHashFromContext(ctx context.Context) string {
	fp := FingerprintFromContext(ctx)
	if fp == nil {
		return ""
	}
	return fp.Hash
}
