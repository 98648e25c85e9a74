package authkit

import (
	"context"
	"testing"
	"time"

	"github.com/verisent/authkit/fingerprint"
)

func collectAuditEvents(t *testing.T, sink *ChannelSink, n int) []AuditEvent {
	t.Helper()

	events := make([]AuditEvent, 0, n)
	timeout := time.After(2 * time.Second)
	for len(events) < n {
		select {
		case ev := <-sink.Events():
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for audit events, got %d of %d", len(events), n)
		}
	}
	return events
}

func TestAuditLifecycleEvents(t *testing.T) {
	sink := NewChannelSink(64)

	engine, _ := newTestEngineWithSink(t, sink, nil)
	ctx := WithClientIP(context.Background(), "203.0.113.7")

	if _, err := engine.Login(ctx, "alice", "laptop"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := engine.Logout(ctx, "alice", "laptop"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := engine.LogoutAll(ctx, "alice"); err != nil {
		t.Fatalf("logout all failed: %v", err)
	}

	events := collectAuditEvents(t, sink, 4)

	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.EventType
		if !ev.Success {
			t.Fatalf("event %s unexpectedly failed: %+v", ev.EventType, ev)
		}
		if ev.UserID != "alice" {
			t.Fatalf("event %s has wrong user: %+v", ev.EventType, ev)
		}
		if ev.IP != "203.0.113.7" {
			t.Fatalf("event %s missing client IP: %+v", ev.EventType, ev)
		}
	}

	want := []string{auditEventLoginSuccess, auditEventLogoutDevice, auditEventLogoutAll, auditEventVersionBump}
	for i, w := range want {
		if types[i] != w {
			t.Fatalf("event order mismatch: got %v, want %v", types, want)
		}
	}

	if events[0].DeviceID != "laptop" {
		t.Fatalf("login event missing device id: %+v", events[0])
	}
}

func TestAuditCarriesFingerprintHash(t *testing.T) {
	sink := NewChannelSink(16)
	engine, _ := newTestEngineWithSink(t, sink, nil)

	fp := fingerprint.New(fingerprint.Components{UserAgent: "Mozilla/5.0", Timezone: "UTC"}, time.Now())
	ctx := WithFingerprint(context.Background(), &fp)

	if _, err := engine.Login(ctx, "alice", "laptop"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	events := collectAuditEvents(t, sink, 1)
	if events[0].Fingerprint != fp.Hash {
		t.Fatalf("login event fingerprint %q != %q", events[0].Fingerprint, fp.Hash)
	}
}

func TestAuditFailureEventsCarryErrorCodes(t *testing.T) {
	sink := NewChannelSink(16)
	engine, _ := newTestEngineWithSink(t, sink, nil)
	ctx := context.Background()

	if _, err := engine.Login(ctx, "bad:user", "laptop"); err == nil {
		t.Fatal("expected login rejection")
	}
	if _, err := engine.Refresh(ctx, "alice", "laptop", "wrong"); err == nil {
		t.Fatal("expected refresh rejection")
	}

	events := collectAuditEvents(t, sink, 2)

	if events[0].EventType != auditEventLoginFailure || events[0].Error != string(auditErrInvalidIdentifier) {
		t.Fatalf("unexpected login failure event: %+v", events[0])
	}
	if events[1].EventType != auditEventRefreshInvalid || events[1].Error != string(auditErrInvalidCredential) {
		t.Fatalf("unexpected refresh failure event: %+v", events[1])
	}
}
