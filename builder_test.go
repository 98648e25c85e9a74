package authkit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBuildRequiresRedis(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected build to fail without a redis client")
	}
}

func TestBuildGeneratesEphemeralSecretInDevMode(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	engine, err := New().WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("dev-mode build without secret failed: %v", err)
	}
	t.Cleanup(engine.Close)

	result, err := engine.Login(context.Background(), "alice", "laptop")
	if err != nil {
		t.Fatalf("login with ephemeral secret failed: %v", err)
	}
	if _, err := engine.VerifyAccess(context.Background(), result.AccessToken); err != nil {
		t.Fatalf("verify with ephemeral secret failed: %v", err)
	}
}

func TestBuildRefusesProductionWithoutSecret(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	cfg := defaultConfig()
	cfg.Security.ProductionMode = true

	if _, err := New().WithConfig(cfg).WithRedis(rdb).Build(); err == nil {
		t.Fatal("production build without secret must fail")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	b := New().WithRedis(rdb)
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, err := b.Build(); err == nil {
		t.Fatal("second build on the same builder must fail")
	}
}
