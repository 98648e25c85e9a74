package authkit

import (
	"context"
	"errors"
	"strings"
	"time"

	internalaudit "github.com/verisent/authkit/internal/audit"

	"github.com/verisent/authkit/internal"
	"github.com/verisent/authkit/session"
	"github.com/verisent/authkit/token"
)

// Engine defines a public type used by authkit APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	versions     *session.VersionStore
	refreshStore *session.RefreshStore
	tokens       *token.Manager
	audit        *internalaudit.Dispatcher
	metrics      *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Login describes the login operation and its observable behavior.
//
// The caller has already authenticated the user through its own credential
// check; Login only mints the session material. When deviceID is empty the
// engine assigns one, so a device without local state still gets a stable
// identity for the rest of its session.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, userID, deviceID string) (*LoginResult, error) {
	if e == nil || e.tokens == nil || e.refreshStore == nil {
		return nil, ErrEngineNotReady
	}
	if userID == "" || strings.Contains(userID, ":") || strings.Contains(deviceID, ":") {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, userID, deviceID, ErrInvalidIdentifier, func() map[string]string {
			return map[string]string{
				"reason": "invalid_identifier",
			}
		})
		return nil, ErrInvalidIdentifier
	}
	if deviceID == "" {
		deviceID = internal.NewDeviceID()
	}

	access, err := e.tokens.Issue(ctx, userID, deviceID)
	if err != nil {
		return nil, e.failLogin(ctx, userID, deviceID, err, "issue_access_failed")
	}

	refresh, err := e.refreshStore.Issue(ctx, userID, deviceID, e.config.Refresh.TTL)
	if err != nil {
		return nil, e.failLogin(ctx, userID, deviceID, err, "issue_refresh_failed")
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, userID, deviceID, nil, nil)

	return &LoginResult{
		UserID:       userID,
		DeviceID:     deviceID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (e *Engine) failLogin(ctx context.Context, userID, deviceID string, err error, reason string) error {
	mapped := e.mapError(err)
	e.metricInc(MetricLoginFailure)
	e.emitAudit(ctx, auditEventLoginFailure, false, userID, deviceID, mapped, func() map[string]string {
		return map[string]string{
			"reason": reason,
		}
	})
	return mapped
}

// Refresh describes the refresh operation and its observable behavior.
//
// The presented refresh token is compared in constant time against the
// stored record for the (user, device) pair. A mismatch, missing record, or
// lazily expired record is a uniform [ErrInvalidCredential]. When
// rotation-on-use is enabled a successful refresh also replaces the stored
// refresh token and the old one stops working immediately.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Refresh(ctx context.Context, userID, deviceID, refreshToken string) (*RefreshResult, error) {
	if e == nil || e.tokens == nil || e.refreshStore == nil {
		return nil, ErrEngineNotReady
	}
	if userID == "" || deviceID == "" || refreshToken == "" {
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshInvalid, false, userID, deviceID, ErrInvalidCredential, func() map[string]string {
			return map[string]string{
				"reason": "missing_input",
			}
		})
		return nil, ErrInvalidCredential
	}

	ok, err := e.refreshStore.Verify(ctx, userID, deviceID, refreshToken)
	if err != nil {
		return nil, e.failRefresh(ctx, userID, deviceID, err, "store_verify_failed")
	}
	if !ok {
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshInvalid, false, userID, deviceID, ErrInvalidCredential, func() map[string]string {
			return map[string]string{
				"reason": "token_mismatch",
			}
		})
		return nil, ErrInvalidCredential
	}

	access, err := e.tokens.Issue(ctx, userID, deviceID)
	if err != nil {
		return nil, e.failRefresh(ctx, userID, deviceID, err, "issue_access_failed")
	}

	result := &RefreshResult{
		AccessToken:  access,
		RefreshToken: refreshToken,
	}

	if e.config.Security.RotateRefreshOnUse {
		next, err := e.refreshStore.Issue(ctx, userID, deviceID, e.config.Refresh.TTL)
		if err != nil {
			return nil, e.failRefresh(ctx, userID, deviceID, err, "rotate_refresh_failed")
		}
		result.RefreshToken = next
		result.Rotated = true
		e.metricInc(MetricRefreshRotated)
	}

	e.metricInc(MetricRefreshSuccess)
	e.emitAudit(ctx, auditEventRefreshSuccess, true, userID, deviceID, nil, nil)

	return result, nil
}

func (e *Engine) failRefresh(ctx context.Context, userID, deviceID string, err error, reason string) error {
	mapped := e.mapError(err)
	e.metricInc(MetricRefreshFailure)
	e.emitAudit(ctx, auditEventRefreshInvalid, false, userID, deviceID, mapped, func() map[string]string {
		return map[string]string{
			"reason": reason,
		}
	})
	return mapped
}

// VerifyAccess describes the verifyaccess operation and its observable behavior.
//
// Every rejected token yields the same [ErrInvalidCredential]; only a store
// outage during the version lookup surfaces as the retryable
// [ErrStoreUnavailable].
//
// VerifyAccess may return an error when input validation, dependency calls, or security checks fail.
// VerifyAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) VerifyAccess(ctx context.Context, tokenStr string) (*AuthResult, error) {
	if e == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			e.metrics.Observe(MetricVerifyLatency, time.Since(start))
		}()
	}

	identity, err := e.tokens.Verify(ctx, tokenStr)
	if err != nil {
		mapped := e.mapError(err)
		e.metricInc(MetricVerifyFailure)
		return nil, mapped
	}

	e.metricInc(MetricVerifySuccess)

	return &AuthResult{
		UserID:       identity.UserID,
		DeviceID:     identity.DeviceID,
		TokenVersion: identity.Version,
	}, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout revokes a single device's refresh credential. Its access token
// stays valid until its own expiry; only LogoutAll cuts access tokens short.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, userID, deviceID string) error {
	if e == nil || e.refreshStore == nil {
		return ErrEngineNotReady
	}

	err := e.mapError(e.refreshStore.Revoke(ctx, userID, deviceID))
	if err == nil {
		e.metricInc(MetricLogout)
	}
	e.emitAudit(ctx, auditEventLogoutDevice, err == nil, userID, deviceID, err, nil)
	return err
}

// LogoutAll describes the logoutall operation and its observable behavior.
//
// This is the credential-compromise response: every refresh record for the
// user is deleted, then the token version counter is bumped so every
// outstanding access token carrying the old version snapshot dies on its
// next verification. Revocation runs first; a half-completed call can leave
// refresh tokens revoked with old access tokens still live until retry, but
// never the reverse.
//
// LogoutAll may return an error when input validation, dependency calls, or security checks fail.
// LogoutAll does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LogoutAll(ctx context.Context, userID string) error {
	if e == nil || e.refreshStore == nil || e.versions == nil {
		return ErrEngineNotReady
	}

	if err := e.refreshStore.RevokeAll(ctx, userID); err != nil {
		mapped := e.mapError(err)
		e.emitAudit(ctx, auditEventLogoutAll, false, userID, "", mapped, func() map[string]string {
			return map[string]string{
				"reason": "revoke_all_failed",
			}
		})
		return mapped
	}

	if err := e.versions.Bump(ctx, userID); err != nil {
		mapped := e.mapError(err)
		e.emitAudit(ctx, auditEventVersionBump, false, userID, "", mapped, nil)
		return mapped
	}

	e.metricInc(MetricLogoutAll)
	e.metricInc(MetricVersionBump)
	e.emitAudit(ctx, auditEventLogoutAll, true, userID, "", nil, nil)
	e.emitAudit(ctx, auditEventVersionBump, true, userID, "", nil, nil)

	return nil
}

// ActiveDevices describes the activedevices operation and its observable behavior.
//
// ActiveDevices may return an error when input validation, dependency calls, or security checks fail.
// ActiveDevices does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ActiveDevices(ctx context.Context, userID string) ([]DeviceSession, error) {
	if e == nil || e.refreshStore == nil {
		return nil, ErrEngineNotReady
	}

	devices, err := e.refreshStore.ListActiveDevices(ctx, userID)
	if err != nil {
		return nil, e.mapError(err)
	}
	return devices, nil
}

// mapError collapses subsystem errors onto the engine's public sentinels:
// credential rejections become ErrInvalidCredential, store outages stay
// ErrStoreUnavailable, everything else passes through.
func (e *Engine) mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStoreUnavailable):
		e.metricInc(MetricStoreUnavailable)
		return err
	case errors.Is(err, token.ErrInvalidToken):
		return ErrInvalidCredential
	case errors.Is(err, token.ErrUnsafeField):
		return ErrInvalidIdentifier
	default:
		return err
	}
}
