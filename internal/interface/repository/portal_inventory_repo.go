package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
	"github.com/TmanScript/umoja-swap-collection/pkg/metrics"
)

// Accepted field-name aliases per canonical field, in priority order.
// The portal API is inconsistent about casing across endpoints, so every
// canonical field is resolved through one ordered alias list instead of
// ad-hoc fallbacks.
var (
	aliasICCID      = []string{"iccid", "ICCID", "Iccid"}
	aliasIMEI       = []string{"imei", "IMEI", "Imei"}
	aliasBarcode    = []string{"barcode", "Barcode", "bar_code"}
	aliasSerial     = []string{"serial_number", "serialNumber", "sn", "SN", "serial"}
	aliasDeviceID   = []string{"deviceId", "device_id"}
	aliasCustomerID = []string{"customer_id", "customerId", "customer_Id"}
	aliasModel      = []string{"model", "type", "description"}
)

// PortalInventoryRepository talks to the remote inventory/customer
// portal over its admin REST API using a static Basic credential.
type PortalInventoryRepository struct {
	baseURL string
	token   string
	client  *http.Client
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewPortalInventoryRepository creates a portal-backed inventory gateway.
func NewPortalInventoryRepository(baseURL, token string, log logger.Logger, m *metrics.Metrics) repository.InventoryRepository {
	return &PortalInventoryRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  log,
		metrics: m,
	}
}

// doJSON issues one request and decodes the JSON response. Non-2xx
// responses surface as *entity.RemoteError with the raw body attached.
func (r *PortalInventoryRepository) doJSON(ctx context.Context, op, method, path string, body interface{}) (interface{}, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+r.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if r.metrics != nil {
		r.metrics.PortalRequestSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &entity.RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode portal response: %w", err)
	}
	return decoded, nil
}

// itemList unwraps the two response envelopes the portal uses: either a
// bare JSON array or an object with a "data" array.
func itemList(decoded interface{}) []map[string]interface{} {
	var raw []interface{}
	switch v := decoded.(type) {
	case []interface{}:
		raw = v
	case map[string]interface{}:
		if data, ok := v["data"].([]interface{}); ok {
			raw = data
		}
	}

	items := make([]map[string]interface{}, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]interface{}); ok {
			items = append(items, m)
		}
	}
	return items
}

// itemObject unwraps a single-record envelope.
func itemObject(decoded interface{}) map[string]interface{} {
	m, ok := decoded.(map[string]interface{})
	if !ok {
		return nil
	}
	if data, ok := m["data"].(map[string]interface{}); ok {
		return data
	}
	return m
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// firstString resolves a canonical field through its ordered alias list.
func firstString(item map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		if s := asString(item[key]); s != "" {
			return s
		}
	}
	return ""
}

func mapCustomer(item map[string]interface{}) entity.Customer {
	id := asString(item["id"])
	customerID := firstString(item, []string{"customer_Id", "customerId"})
	if customerID == "" {
		customerID = id
	}
	return entity.Customer{
		ID:         id,
		CustomerID: customerID,
		FirstName:  asString(item["first_name"]),
		LastName:   asString(item["last_name"]),
		Name:       asString(item["name"]),
		Email:      asString(item["email"]),
		Phone:      asString(item["phone"]),
	}
}

func mapDevice(item map[string]interface{}) entity.Device {
	iccid := firstString(item, aliasICCID)
	imei := firstString(item, aliasIMEI)
	barcode := firstString(item, aliasBarcode)
	serial := firstString(item, aliasSerial)

	// Display identifier priority: human-readable hardware ids first,
	// internal UUIDs last.
	displayID := iccid
	for _, candidate := range []string{barcode, serial, imei, firstString(item, aliasDeviceID), asString(item["id"])} {
		if displayID != "" {
			break
		}
		displayID = candidate
	}

	id := asString(item["id"])
	if id == "" {
		id = displayID
	}

	return entity.Device{
		ID:           id,
		DeviceID:     displayID,
		Status:       asString(item["status"]),
		CustomerID:   firstString(item, aliasCustomerID),
		Model:        firstString(item, aliasModel),
		Type:         asString(item["type"]),
		ICCID:        iccid,
		IMEI:         imei,
		Barcode:      barcode,
		SerialNumber: serial,
	}
}

// GetCustomers fetches and normalizes the full customer set.
func (r *PortalInventoryRepository) GetCustomers(ctx context.Context) ([]entity.Customer, error) {
	decoded, err := r.doJSON(ctx, "get_customers", http.MethodGet, "/customers/customer", nil)
	if err != nil {
		return nil, err
	}

	items := itemList(decoded)
	customers := make([]entity.Customer, 0, len(items))
	for _, item := range items {
		customers = append(customers, mapCustomer(item))
	}
	return customers, nil
}

// GetCustomer fetches one customer, returning (nil, nil) when the portal
// has no record for the id.
func (r *PortalInventoryRepository) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	decoded, err := r.doJSON(ctx, "get_customer", http.MethodGet, "/customers/customer/"+id, nil)
	if err != nil {
		return nil, err
	}

	item := itemObject(decoded)
	if item == nil {
		return nil, nil
	}
	customer := mapCustomer(item)
	return &customer, nil
}

// GetInventory fetches and normalizes the full inventory set.
func (r *PortalInventoryRepository) GetInventory(ctx context.Context) ([]entity.Device, error) {
	decoded, err := r.doJSON(ctx, "get_inventory", http.MethodGet, "/inventory/items", nil)
	if err != nil {
		return nil, err
	}

	items := itemList(decoded)
	devices := make([]entity.Device, 0, len(items))
	for _, item := range items {
		devices = append(devices, mapDevice(item))
	}
	return devices, nil
}

// ReturnDevice marks an inventory item as returned. Expects the internal
// database id, not the barcode.
func (r *PortalInventoryRepository) ReturnDevice(ctx context.Context, id string) error {
	_, err := r.doJSON(ctx, "return_device", http.MethodPut, "/inventory/items/"+id, map[string]string{
		"status": entity.StatusReturned,
	})
	return err
}

// AssignDevice links an inventory item to a customer and marks it
// assigned. Expects the internal database id.
func (r *PortalInventoryRepository) AssignDevice(ctx context.Context, id, customerKey string) error {
	_, err := r.doJSON(ctx, "assign_device", http.MethodPut, "/inventory/items/"+id, map[string]string{
		"customer_id": customerKey,
		"status":      entity.StatusAssigned,
	})
	return err
}

// DisableCustomer sets a customer account to disabled.
func (r *PortalInventoryRepository) DisableCustomer(ctx context.Context, customerKey string) error {
	_, err := r.doJSON(ctx, "disable_customer", http.MethodPut, "/customers/customer/"+customerKey, map[string]string{
		"status": entity.StatusDisabled,
	})
	return err
}
