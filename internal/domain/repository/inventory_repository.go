package repository

import (
	"context"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// InventoryRepository is the gateway to the remote inventory/customer
// portal. Reads return canonical projections of remote state; writes
// mutate remote records directly and are never retried here.
type InventoryRepository interface {
	GetCustomers(ctx context.Context) ([]entity.Customer, error)
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
	GetInventory(ctx context.Context) ([]entity.Device, error)

	// ReturnDevice sets the item status to returned. The caller is
	// responsible for only passing an id it has already resolved.
	ReturnDevice(ctx context.Context, id string) error
	// AssignDevice sets status to assigned and links the customer key.
	AssignDevice(ctx context.Context, id, customerKey string) error
	// DisableCustomer sets the customer account status to disabled.
	DisableCustomer(ctx context.Context, customerKey string) error
}
