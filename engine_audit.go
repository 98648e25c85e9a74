package authkit

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventLoginSuccess   = "login_success"
	auditEventLoginFailure   = "login_failure"
	auditEventRefreshSuccess = "refresh_success"
	auditEventRefreshInvalid = "refresh_invalid"
	auditEventLogoutDevice   = "logout_device"
	auditEventLogoutAll      = "logout_all"
	auditEventVersionBump    = "token_version_bump"
)

// AuditErrorCode defines a public type used by authkit APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidCredential AuditErrorCode = "invalid_credential"
	auditErrInvalidIdentifier AuditErrorCode = "invalid_identifier"
	auditErrUnavailable       AuditErrorCode = "store_unavailable"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	deviceID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp:   time.Now().UTC(),
		EventType:   eventType,
		UserID:      userID,
		DeviceID:    deviceID,
		IP:          ClientIPFromContext(ctx),
		Fingerprint: fingerprintHashFromContext(ctx),
		Success:     success,
		Metadata:    metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredential):
		return auditErrInvalidCredential
	case errors.Is(err, ErrInvalidIdentifier):
		return auditErrInvalidIdentifier
	case errors.Is(err, ErrStoreUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
