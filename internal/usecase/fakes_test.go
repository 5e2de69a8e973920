package usecase

import (
	"context"
	"errors"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// fakeInventory is an in-memory inventory gateway with per-call error
// injection.
type fakeInventory struct {
	customers []entity.Customer
	devices   []entity.Device

	getInventoryErr error
	returnErr       error
	assignErr       error
	disableErr      error
	getCustomerErr  error

	returned  []string
	assigned  map[string]string
	disabled  []string
	getCalled int
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{assigned: map[string]string{}}
}

func (f *fakeInventory) GetCustomers(ctx context.Context) ([]entity.Customer, error) {
	return f.customers, nil
}

func (f *fakeInventory) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	if f.getCustomerErr != nil {
		return nil, f.getCustomerErr
	}
	for i := range f.customers {
		if f.customers[i].ID == id || f.customers[i].CustomerID == id {
			return &f.customers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInventory) GetInventory(ctx context.Context) ([]entity.Device, error) {
	f.getCalled++
	if f.getInventoryErr != nil {
		return nil, f.getInventoryErr
	}
	return f.devices, nil
}

func (f *fakeInventory) ReturnDevice(ctx context.Context, id string) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	f.returned = append(f.returned, id)
	return nil
}

func (f *fakeInventory) AssignDevice(ctx context.Context, id, customerKey string) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned[id] = customerKey
	return nil
}

func (f *fakeInventory) DisableCustomer(ctx context.Context, customerKey string) error {
	if f.disableErr != nil {
		return f.disableErr
	}
	f.disabled = append(f.disabled, customerKey)
	return nil
}

// fakeSwapLedger records every append in order.
type fakeSwapLedger struct {
	records   []entity.SwapRecord
	recordErr error
}

func (f *fakeSwapLedger) RecordSwap(ctx context.Context, record *entity.SwapRecord) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeSwapLedger) GetSwapHistory(ctx context.Context, adminID string) ([]entity.SwapRecord, error) {
	return f.records, nil
}

// fakeCollectionLedger records every append in order.
type fakeCollectionLedger struct {
	records   []entity.CollectionRecord
	recordErr error
}

func (f *fakeCollectionLedger) RecordCollection(ctx context.Context, record *entity.CollectionRecord) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeCollectionLedger) GetCollectionHistory(ctx context.Context, agent string) ([]entity.CollectionRecord, error) {
	return f.records, nil
}

func (f *fakeCollectionLedger) GetAllCollectionHistory(ctx context.Context) ([]entity.CollectionRecord, error) {
	return f.records, nil
}

var errRemote = errors.New("portal unreachable")
