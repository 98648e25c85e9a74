package token

import (
	"strings"
	"testing"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestSignerRejectsShortSecret(t *testing.T) {
	if _, err := NewSigner([]byte("too-short")); err != ErrWeakSecret {
		t.Fatalf("expected ErrWeakSecret, got %v", err)
	}
}

func TestSignerCopiesSecret(t *testing.T) {
	secret := testSecret()
	s, err := NewSigner(secret)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	sig := s.Sign("payload")
	for i := range secret {
		secret[i] = 0
	}

	if !s.Verify("payload", sig) {
		t.Fatal("signer must not alias the caller's secret slice")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	s, err := NewSigner(testSecret())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	sig := s.Sign("u1:d1:1700000000000:0")
	if !s.Verify("u1:d1:1700000000000:0", sig) {
		t.Fatal("expected signature to verify")
	}
	if s.Verify("u1:d1:1700000000000:1", sig) {
		t.Fatal("expected different payload to fail verification")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	s, err := NewSigner(testSecret())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	sig := s.Sign("payload")
	for i := 0; i < len(sig); i++ {
		flipped := flipHexChar(sig, i)
		if s.Verify("payload", flipped) {
			t.Fatalf("expected flipped signature at index %d to fail", i)
		}
	}
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	s, err := NewSigner(testSecret())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	for _, sig := range []string{"", "zz", "not-hex", strings.Repeat("0", 63)} {
		if s.Verify("payload", sig) {
			t.Fatalf("expected malformed signature %q to fail", sig)
		}
	}
}

func flipHexChar(s string, i int) string {
	b := []byte(s)
	if b[i] == '0' {
		b[i] = '1'
	} else {
		b[i] = '0'
	}
	return string(b)
}
