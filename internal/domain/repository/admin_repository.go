package repository

import (
	"context"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// AdminRepository looks up back-office accounts for login.
type AdminRepository interface {
	// FindByPhone returns the admin with the given phone number, or
	// (nil, nil) when no such account exists.
	FindByPhone(ctx context.Context, phone string) (*entity.Admin, error)
}
