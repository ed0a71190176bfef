package ports

import "time"

// Audit actions emitted by the auth flows.
const (
	AuditRegister   = "register"
	AuditLogin      = "login"
	AuditRefresh    = "refresh"
	AuditLockout    = "lockout"
	AuditRoleChange = "role_change"
)

// AuditEvent is a structured record of a security-relevant event.
type AuditEvent struct {
	Action  string    `json:"action"`
	UserID  string    `json:"userId,omitempty"`
	Email   string    `json:"email,omitempty"`
	Success bool      `json:"success"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// AuditSink receives security events. Record must not block request handling
// beyond transient backpressure; delivery is best-effort.
type AuditSink interface {
	Record(event AuditEvent)
}
