package repository

import (
	"context"
	"time"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
)

// Static fixture data keeping the workflows exercisable without live
// portal credentials.
var mockCustomers = []entity.Customer{
	{ID: "cust_1", CustomerID: "cust_1", FirstName: "John", LastName: "Doe", Email: "john@example.com", Phone: "555-0101"},
	{ID: "cust_2", CustomerID: "cust_2", FirstName: "Jane", LastName: "Smith", Email: "jane@test.com", Phone: "555-0102"},
	{ID: "cust_3", CustomerID: "cust_3", FirstName: "Alice", LastName: "Johnson", Email: "alice@company.net", Phone: "555-0103"},
}

var mockInventory = []entity.Device{
	{ID: "inv_1", DeviceID: "DEV-001", Status: entity.StatusAssigned, CustomerID: "cust_1", Model: "Router X1"},
	{ID: "inv_2", DeviceID: "DEV-002", Status: entity.StatusInStock, Model: "Router X1"},
	{ID: "inv_3", DeviceID: "DEV-003", Status: entity.StatusAssigned, CustomerID: "cust_2", Model: "Modem Z2"},
	{ID: "inv_4", DeviceID: "DEV-004", Status: entity.StatusReturned, Model: "Modem Z2"},
	{ID: "inv_5", DeviceID: "DEV-005", Status: entity.StatusInStock, Model: "Router X1"},
}

// MockInventoryRepository stands in for the portal when no credential is
// configured. Reads serve a fixed dataset, writes are no-ops; both add
// artificial latency so the caller's loading paths stay exercisable.
type MockInventoryRepository struct {
	latency time.Duration
	logger  logger.Logger
}

// NewMockInventoryRepository creates the fixture-backed gateway.
func NewMockInventoryRepository(latency time.Duration, log logger.Logger) repository.InventoryRepository {
	return &MockInventoryRepository{latency: latency, logger: log}
}

func (r *MockInventoryRepository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *MockInventoryRepository) GetCustomers(ctx context.Context) ([]entity.Customer, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	customers := make([]entity.Customer, len(mockCustomers))
	copy(customers, mockCustomers)
	return customers, nil
}

func (r *MockInventoryRepository) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	for _, c := range mockCustomers {
		if c.ID == id {
			customer := c
			return &customer, nil
		}
	}
	return nil, nil
}

func (r *MockInventoryRepository) GetInventory(ctx context.Context) ([]entity.Device, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	devices := make([]entity.Device, len(mockInventory))
	copy(devices, mockInventory)
	return devices, nil
}

func (r *MockInventoryRepository) ReturnDevice(ctx context.Context, id string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.logger.Info("Mock mode: return device skipped", "id", id)
	return nil
}

func (r *MockInventoryRepository) AssignDevice(ctx context.Context, id, customerKey string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.logger.Info("Mock mode: assign device skipped", "id", id, "customer", customerKey)
	return nil
}

func (r *MockInventoryRepository) DisableCustomer(ctx context.Context, customerKey string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.logger.Info("Mock mode: disable customer skipped", "customer", customerKey)
	return nil
}
