package entity

import "time"

// Audit event kinds and levels.
const (
	AuditKindSwap       = "swap"
	AuditKindCollection = "collection"

	AuditLevelInfo    = "info"
	AuditLevelSuccess = "success"
	AuditLevelError   = "error"
)

// AuditEvent is one entry of the workflow activity trail. Writes are
// best-effort: a failed append never blocks the workflow that emitted it.
type AuditEvent struct {
	ID      string    `bson:"_id,omitempty"`
	Kind    string    `bson:"kind"`
	Level   string    `bson:"level"`
	Message string    `bson:"message"`
	Detail  string    `bson:"detail,omitempty"`
	Admin   string    `bson:"admin"`
	At      time.Time `bson:"at"`
}
