package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
)

func portalServer(t *testing.T, handler http.HandlerFunc) (*PortalInventoryRepository, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	repo := NewPortalInventoryRepository(srv.URL, "dGVzdA==", logger.NewNop(), nil).(*PortalInventoryRepository)
	return repo, srv
}

func TestPortalGetInventoryNormalizesFieldCasing(t *testing.T) {
	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventory/items" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Basic dGVzdA==" {
			t.Errorf("auth header = %q", got)
		}
		// Mixed envelope and casing, as seen from the live portal.
		w.Write([]byte(`{"data":[
			{"id":"inv_1","ICCID":"89270001","status":"assigned","customerId":"cust_1","type":"SIM"},
			{"id":"inv_2","bar_code":"BC-2","SN":"SER-2","status":"in_stock","model":"Router X1"},
			{"id":"inv_3","Imei":"356938","device_id":"DEV-3","status":"returned"}
		]}`))
	})

	devices, err := repo.GetInventory(context.Background())
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("want 3 devices, got %d", len(devices))
	}

	sim := devices[0]
	if sim.ICCID != "89270001" || sim.CustomerID != "cust_1" || sim.Model != "SIM" {
		t.Errorf("sim = %+v", sim)
	}
	// ICCID wins the display identifier for SIMs.
	if sim.DeviceID != "89270001" {
		t.Errorf("sim DeviceID = %q", sim.DeviceID)
	}

	router := devices[1]
	if router.Barcode != "BC-2" || router.SerialNumber != "SER-2" {
		t.Errorf("router = %+v", router)
	}
	// Barcode outranks serial for display.
	if router.DeviceID != "BC-2" {
		t.Errorf("router DeviceID = %q", router.DeviceID)
	}

	modem := devices[2]
	if modem.IMEI != "356938" {
		t.Errorf("modem = %+v", modem)
	}
	// IMEI outranks the portal device_id.
	if modem.DeviceID != "356938" {
		t.Errorf("modem DeviceID = %q", modem.DeviceID)
	}
}

func TestPortalBareArrayEnvelope(t *testing.T) {
	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"inv_1","barcode":"BC-1","status":"in_stock"}]`))
	})

	devices, err := repo.GetInventory(context.Background())
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if len(devices) != 1 || devices[0].Barcode != "BC-1" {
		t.Errorf("devices = %+v", devices)
	}
}

func TestPortalNumericFieldsBecomeStrings(t *testing.T) {
	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1001,"barcode":200345,"status":"in_stock"}]`))
	})

	devices, err := repo.GetInventory(context.Background())
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if devices[0].ID != "1001" || devices[0].Barcode != "200345" {
		t.Errorf("numeric ids not stringified: %+v", devices[0])
	}
}

func TestPortalGetCustomers(t *testing.T) {
	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers/customer" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":[
			{"id":"cust_1","first_name":"John","last_name":"Doe","email":"john@example.com"},
			{"id":"cust_2","customer_Id":"ext_2","name":"Jane Smith"}
		]}`))
	})

	customers, err := repo.GetCustomers(context.Background())
	if err != nil {
		t.Fatalf("GetCustomers: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("want 2 customers, got %d", len(customers))
	}
	if customers[0].CustomerID != "cust_1" {
		t.Errorf("missing customer_Id must fall back to id, got %q", customers[0].CustomerID)
	}
	if customers[1].Key() != "ext_2" {
		t.Errorf("Key() = %q, want the alternate id", customers[1].Key())
	}
}

func TestPortalGetCustomerAbsent(t *testing.T) {
	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	customer, err := repo.GetCustomer(context.Background(), "cust_404")
	if err != nil {
		t.Fatalf("GetCustomer: %v", err)
	}
	if customer != nil {
		t.Errorf("want nil customer, got %+v", customer)
	}
}

func TestPortalNon2xxIsRemoteError(t *testing.T) {
	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"bad credential"}`))
	})

	_, err := repo.GetInventory(context.Background())
	var remote *entity.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("want RemoteError, got %v", err)
	}
	if remote.Status != http.StatusForbidden {
		t.Errorf("status = %d", remote.Status)
	}
	if remote.Body != `{"error":"bad credential"}` {
		t.Errorf("body = %q", remote.Body)
	}
}

func TestPortalMutations(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]string
	}
	var calls []call

	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: body})
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	if err := repo.ReturnDevice(ctx, "inv_1"); err != nil {
		t.Fatalf("ReturnDevice: %v", err)
	}
	if err := repo.AssignDevice(ctx, "inv_2", "cust_1"); err != nil {
		t.Fatalf("AssignDevice: %v", err)
	}
	if err := repo.DisableCustomer(ctx, "cust_1"); err != nil {
		t.Fatalf("DisableCustomer: %v", err)
	}

	want := []call{
		{"PUT", "/inventory/items/inv_1", map[string]string{"status": "returned"}},
		{"PUT", "/inventory/items/inv_2", map[string]string{"customer_id": "cust_1", "status": "assigned"}},
		{"PUT", "/customers/customer/cust_1", map[string]string{"status": "disabled"}},
	}
	if len(calls) != len(want) {
		t.Fatalf("made %d calls, want %d", len(calls), len(want))
	}
	for i, w := range want {
		got := calls[i]
		if got.method != w.method || got.path != w.path {
			t.Errorf("call %d: %s %s, want %s %s", i, got.method, got.path, w.method, w.path)
		}
		for k, v := range w.body {
			if got.body[k] != v {
				t.Errorf("call %d body[%s] = %q, want %q", i, k, got.body[k], v)
			}
		}
	}
}

func TestPortalEmptyBody(t *testing.T) {
	// Some mutation endpoints reply 204 with no body.
	repo, _ := portalServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := repo.ReturnDevice(context.Background(), "inv_1"); err != nil {
		t.Fatalf("ReturnDevice on empty body: %v", err)
	}
}
