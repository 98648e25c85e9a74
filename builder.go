package authkit

import (
	"crypto/rand"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	internalaudit "github.com/verisent/authkit/internal/audit"
	"github.com/verisent/authkit/session"
	"github.com/verisent/authkit/token"
)

// Builder defines a public type used by authkit APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if len(cfg.Token.Secret) == 0 {
		if cfg.Security.ProductionMode {
			return nil, errors.New("ProductionMode requires an explicit Token Secret")
		}
		secret, err := newEphemeralSecret()
		if err != nil {
			return nil, err
		}
		cfg.Token.Secret = secret
		log.Printf("authkit: WARNING: no signing secret configured, generated an ephemeral one; every token dies with this process")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	versions := session.NewVersionStore(b.redis)
	refreshStore := session.NewRefreshStore(b.redis)

	tokens, err := token.NewManager(token.Config{
		AccessTTL: cfg.Token.AccessTTL,
		Secret:    cfg.Token.Secret,
	}, versions)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:       cloneConfig(cfg),
		versions:     versions,
		refreshStore: refreshStore,
		tokens:       tokens,
	}

	if cfg.Audit.Enabled {
		engine.audit = internalaudit.NewDispatcher(b.auditSink, cfg.Audit.BufferSize, cfg.Audit.DropIfFull)
	}
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}

func newEphemeralSecret() ([]byte, error) {
	secret := make([]byte, token.MinSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}
