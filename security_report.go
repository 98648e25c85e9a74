package authkit

import "time"

// SecurityReport is a read-only snapshot of the engine’s security posture,
// returned by [Engine.SecurityReport].
type SecurityReport struct {
	ProductionMode         bool
	SigningAlgorithm       string
	AccessTTL              time.Duration
	RefreshTTL             time.Duration
	RefreshRotationEnabled bool
	AuditEnabled           bool
	MetricsEnabled         bool
}

// SecurityReport describes the securityreport operation and its observable behavior.
//
// SecurityReport may return an error when input validation, dependency calls, or security checks fail.
// SecurityReport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		ProductionMode:         e.config.Security.ProductionMode,
		SigningAlgorithm:       "hmac-sha256",
		AccessTTL:              e.config.Token.AccessTTL,
		RefreshTTL:             e.config.Refresh.TTL,
		RefreshRotationEnabled: e.config.Security.RotateRefreshOnUse,
		AuditEnabled:           e.config.Audit.Enabled,
		MetricsEnabled:         e.config.Metrics.Enabled,
	}
}
