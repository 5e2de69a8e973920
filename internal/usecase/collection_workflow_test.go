package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
)

func collectionFixture(agent string) (*CollectionWorkflow, *fakeInventory, *fakeCollectionLedger) {
	inv := newFakeInventory()
	inv.customers = []entity.Customer{
		{ID: "cust_1", FirstName: "John", LastName: "Doe"},
	}
	inv.devices = []entity.Device{
		{ID: "inv_1", DeviceID: "RTR-001", Status: entity.StatusAssigned, CustomerID: "cust_1", Barcode: "BC-RTR", Model: "Router X1"},
		{ID: "inv_2", DeviceID: "SIM-001", Status: entity.StatusAssigned, CustomerID: "cust_1", ICCID: "8927000000000000001"},
		{ID: "inv_3", DeviceID: "SIM-002", Status: entity.StatusInStock, Model: "Prepaid SIM"},
		{ID: "inv_4", DeviceID: "RTR-002", Status: entity.StatusInStock, Model: "Router Y2"},
	}
	ledger := &fakeCollectionLedger{}
	wf := NewCollectionWorkflow(inv, ledger, nil, logger.NewNop(), nil, Identity{AdminID: "7", AdminName: agent})
	return wf, inv, ledger
}

func TestCollectionRouterSlotRejectsSIM(t *testing.T) {
	wf, _, _ := collectionFixture("Agent A")

	tests := []struct {
		name string
		scan string
	}{
		{"iccid-bearing device", "SIM-001"},
		{"sim model text", "SIM-002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wf.ScanRouter(context.Background(), tt.scan)
			var validation *entity.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), "appears to be a SIM") {
				t.Errorf("unexpected message: %v", err)
			}
			if wf.Router() != nil {
				t.Error("rejected scan must not fill the router slot")
			}
		})
	}
}

func TestCollectionSIMSlotIsPermissive(t *testing.T) {
	// The SIM slot takes any resolvable device, router included.
	wf, _, _ := collectionFixture("Agent A")

	device, err := wf.ScanSIM(context.Background(), "RTR-002")
	if err != nil {
		t.Fatalf("ScanSIM: %v", err)
	}
	if device.ID != "inv_4" {
		t.Errorf("resolved %q, want inv_4", device.ID)
	}
	if wf.SIM() == nil {
		t.Error("SIM slot not staged")
	}
}

func TestCollectionUnknownScan(t *testing.T) {
	wf, _, _ := collectionFixture("Agent A")

	_, err := wf.ScanRouter(context.Background(), "NOPE")
	var notFound *entity.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("want NotFoundError, got %v", err)
	}
}

func TestCollectionConfirmRequiresAtLeastOneScan(t *testing.T) {
	wf, _, _ := collectionFixture("Agent A")

	_, err := wf.Confirm(context.Background())
	var validation *entity.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("want ValidationError, got %v", err)
	}
}

func TestCollectionConfirmRouterAndSIM(t *testing.T) {
	wf, inv, ledger := collectionFixture("Agent A")
	ctx := context.Background()

	if _, err := wf.ScanRouter(ctx, "RTR-001"); err != nil {
		t.Fatal(err)
	}
	if _, err := wf.ScanSIM(ctx, "SIM-001"); err != nil {
		t.Fatal(err)
	}

	record, err := wf.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	// Both devices returned, router's customer disabled once.
	if len(inv.returned) != 2 {
		t.Errorf("returned %v, want router and SIM", inv.returned)
	}
	if len(inv.disabled) != 1 || inv.disabled[0] != "cust_1" {
		t.Errorf("disabled = %v, want [cust_1]", inv.disabled)
	}

	if len(ledger.records) != 1 {
		t.Fatalf("want a single combined record, got %d", len(ledger.records))
	}
	if record.CustomerID != "cust_1" || record.FullName != "John Doe" {
		t.Errorf("customer fields = %q/%q", record.CustomerID, record.FullName)
	}
	if record.Barcode != "BC-RTR" {
		t.Errorf("Barcode = %q, want ledger code BC-RTR", record.Barcode)
	}
	if record.SIM != "SIM-001" {
		t.Errorf("SIM = %q", record.SIM)
	}

	// Success clears both slots.
	if wf.Router() != nil || wf.SIM() != nil {
		t.Error("slots not cleared after successful confirm")
	}
}

func TestCollectionSIMOnlyNeverDisablesCustomer(t *testing.T) {
	wf, inv, ledger := collectionFixture("Agent A")
	ctx := context.Background()

	if _, err := wf.ScanSIM(ctx, "SIM-001"); err != nil {
		t.Fatal(err)
	}
	record, err := wf.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if len(inv.disabled) != 0 {
		t.Errorf("SIM-only collection disabled customers: %v", inv.disabled)
	}
	if record.Barcode != "" || record.SIM != "SIM-001" {
		t.Errorf("record = barcode %q sim %q", record.Barcode, record.SIM)
	}
	if record.CustomerID != "cust_1" {
		t.Errorf("CustomerID = %q, SIM owner should still be recorded", record.CustomerID)
	}
	if len(ledger.records) != 1 {
		t.Errorf("want 1 record, got %d", len(ledger.records))
	}
}

func TestCollectionUnownedItemsFallBackToPlaceholders(t *testing.T) {
	wf, _, _ := collectionFixture("Agent A")
	ctx := context.Background()

	if _, err := wf.ScanRouter(ctx, "RTR-002"); err != nil {
		t.Fatal(err)
	}
	record, err := wf.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if record.CustomerID != "N/A" {
		t.Errorf("CustomerID = %q, want N/A", record.CustomerID)
	}
	if record.FullName != "Unknown" {
		t.Errorf("FullName = %q, want Unknown", record.FullName)
	}
}

func TestCollectionCustomerLookupFailureRecordsUnknown(t *testing.T) {
	// A failing name lookup must not abort the collection.
	wf, inv, _ := collectionFixture("Agent A")
	inv.getCustomerErr = errRemote
	ctx := context.Background()

	if _, err := wf.ScanRouter(ctx, "RTR-001"); err != nil {
		t.Fatal(err)
	}
	record, err := wf.Confirm(ctx)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if record.FullName != "Unknown" {
		t.Errorf("FullName = %q, want Unknown", record.FullName)
	}
	if record.CustomerID != "cust_1" {
		t.Errorf("CustomerID = %q, owner id is still known", record.CustomerID)
	}
}

func TestCollectionFailureKeepsSlotsAndWritesNothing(t *testing.T) {
	wf, inv, ledger := collectionFixture("Agent A")
	inv.returnErr = errRemote
	ctx := context.Background()

	if _, err := wf.ScanRouter(ctx, "RTR-001"); err != nil {
		t.Fatal(err)
	}
	_, err := wf.Confirm(ctx)
	if !errors.Is(err, errRemote) {
		t.Fatalf("want remote error, got %v", err)
	}

	if wf.Router() == nil {
		t.Error("failed confirm must keep the staged router for retry")
	}
	if len(ledger.records) != 0 {
		t.Errorf("failed collection wrote %d records, want 0", len(ledger.records))
	}
}

func TestCollectionProvinceByAgent(t *testing.T) {
	tests := []struct {
		agent    string
		province string
	}{
		{"Neo", "Limpopo"},
		{"Ngoako David Railo", "Limpopo"},
		{"Agent A", "Gauteng"},
		{"neo", "Gauteng"},
	}

	for _, tt := range tests {
		t.Run(tt.agent, func(t *testing.T) {
			wf, _, _ := collectionFixture(tt.agent)
			ctx := context.Background()

			if _, err := wf.ScanRouter(ctx, "RTR-002"); err != nil {
				t.Fatal(err)
			}
			record, err := wf.Confirm(ctx)
			if err != nil {
				t.Fatalf("Confirm: %v", err)
			}
			if record.Province != tt.province {
				t.Errorf("province = %q, want %q", record.Province, tt.province)
			}
			if record.Agent != tt.agent {
				t.Errorf("agent = %q", record.Agent)
			}
		})
	}
}

func TestCollectionClearSlots(t *testing.T) {
	wf, _, _ := collectionFixture("Agent A")
	ctx := context.Background()

	if _, err := wf.ScanRouter(ctx, "RTR-001"); err != nil {
		t.Fatal(err)
	}
	if _, err := wf.ScanSIM(ctx, "SIM-001"); err != nil {
		t.Fatal(err)
	}

	wf.ClearRouter()
	if wf.Router() != nil {
		t.Error("ClearRouter left the slot populated")
	}
	if wf.SIM() == nil {
		t.Error("ClearRouter must not touch the SIM slot")
	}
	wf.ClearSIM()
	if wf.SIM() != nil {
		t.Error("ClearSIM left the slot populated")
	}
}
