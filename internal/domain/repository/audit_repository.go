package repository

import (
	"context"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// AuditRepository persists the workflow activity trail.
type AuditRepository interface {
	Append(ctx context.Context, event *entity.AuditEvent) error
	// ListRecent returns the newest events for one admin, newest first.
	ListRecent(ctx context.Context, admin string, limit int) ([]entity.AuditEvent, error)
}
