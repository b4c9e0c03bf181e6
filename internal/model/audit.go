package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction enumerates schedule mutations worth a trail entry.
type AuditAction string

const (
	AuditActionClassAccepted AuditAction = "CLASS_ACCEPTED"
	AuditActionClassDeleted  AuditAction = "CLASS_DELETED"
)

// AuditEntry records one committed mutation of the schedule. Entries are
// written asynchronously by the audit worker, never on the request path.
type AuditEntry struct {
	ID           uuid.UUID   `json:"id"`
	Action       AuditAction `json:"action"`
	GroupKey     string      `json:"group_key"`
	ClassName    string      `json:"class_name"`
	SessionCount int         `json:"session_count"`
	CreatedAt    time.Time   `json:"created_at"`
}
