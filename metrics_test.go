package authkit

import (
	"context"
	"testing"
	"time"
)

func TestMetricsCountLifecycleOperations(t *testing.T) {
	engine, _ := newTestEngine(t, func(cfg *Config) {
		cfg.Metrics.Enabled = true
		cfg.Metrics.EnableLatencyHistograms = true
	})
	ctx := context.Background()

	login, err := engine.Login(ctx, "alice", "laptop")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := engine.VerifyAccess(ctx, login.AccessToken); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if _, err := engine.VerifyAccess(ctx, "garbage"); err == nil {
		t.Fatal("expected garbage token to fail")
	}
	if _, err := engine.Refresh(ctx, "alice", "laptop", login.RefreshToken); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if err := engine.Logout(ctx, "alice", "laptop"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := engine.LogoutAll(ctx, "alice"); err != nil {
		t.Fatalf("logout all failed: %v", err)
	}

	snapshot := engine.MetricsSnapshot()
	expect := map[MetricID]uint64{
		MetricLoginSuccess:   1,
		MetricVerifySuccess:  1,
		MetricVerifyFailure:  1,
		MetricRefreshSuccess: 1,
		MetricLogout:         1,
		MetricLogoutAll:      1,
		MetricVersionBump:    1,
	}
	for id, want := range expect {
		if got := snapshot.Counters[id]; got != want {
			t.Fatalf("counter %d: got %d, want %d", id, got, want)
		}
	}

	buckets := snapshot.Histograms[MetricVerifyLatency]
	if len(buckets) != histBucketCount {
		t.Fatalf("expected %d latency buckets, got %d", histBucketCount, len(buckets))
	}
	var total uint64
	for _, b := range buckets {
		total += b
	}
	if total != 2 {
		t.Fatalf("expected 2 latency observations, got %d", total)
	}
}

func TestMetricsDisabledSnapshotIsEmpty(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	if _, err := engine.Login(context.Background(), "alice", "laptop"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	snapshot := engine.MetricsSnapshot()
	if len(snapshot.Counters) != 0 || len(snapshot.Histograms) != 0 {
		t.Fatalf("disabled metrics must snapshot empty, got %+v", snapshot)
	}
}

func TestMetricsObserveIgnoresCounterIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricLoginSuccess, 3*time.Millisecond)
	m.Observe(MetricVerifyLatency, 3*time.Millisecond)

	s := m.Snapshot()
	if s.Counters[MetricLoginSuccess] != 0 {
		t.Fatal("Observe must not touch counters")
	}
	if s.Histograms[MetricVerifyLatency][0] != 1 {
		t.Fatalf("expected one observation in the first bucket, got %v", s.Histograms[MetricVerifyLatency])
	}
}

func TestBucketIndexBoundaries(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{time.Millisecond, 0},
		{5 * time.Millisecond, 0},
		{6 * time.Millisecond, 1},
		{25 * time.Millisecond, 2},
		{50 * time.Millisecond, 3},
		{100 * time.Millisecond, 4},
		{250 * time.Millisecond, 5},
		{500 * time.Millisecond, 6},
		{time.Second, 7},
	}

	for _, tc := range cases {
		if got := bucketIndex(tc.d); got != tc.want {
			t.Fatalf("bucketIndex(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}
