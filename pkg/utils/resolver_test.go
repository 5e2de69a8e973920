package utils

import (
	"errors"
	"testing"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

func TestResolveDeviceMatchesEveryIdentifierField(t *testing.T) {
	devices := []entity.Device{
		{
			ID:           "inv_9",
			DeviceID:     "DEV-900",
			ICCID:        "8927000000000000001",
			IMEI:         "356938035643809",
			Barcode:      "BC-900",
			SerialNumber: "SN-900",
		},
	}

	tests := []struct {
		name string
		scan string
	}{
		{"device id", "DEV-900"},
		{"internal id", "inv_9"},
		{"iccid", "8927000000000000001"},
		{"imei", "356938035643809"},
		{"barcode", "BC-900"},
		{"serial number", "SN-900"},
		{"case insensitive", "dev-900"},
		{"surrounding whitespace", "  BC-900\n"},
		{"mixed case and whitespace", " sn-900 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDevice(tt.scan, devices)
			if err != nil {
				t.Fatalf("ResolveDevice(%q) error: %v", tt.scan, err)
			}
			if got.ID != "inv_9" {
				t.Errorf("resolved wrong device: %q", got.ID)
			}
		})
	}
}

func TestResolveDeviceNotFound(t *testing.T) {
	devices := []entity.Device{
		{ID: "inv_1", DeviceID: "DEV-001"},
	}

	for _, scan := range []string{"DEV-999", "", "   "} {
		_, err := ResolveDevice(scan, devices)
		var notFound *entity.NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("ResolveDevice(%q): want NotFoundError, got %v", scan, err)
		}
	}
}

func TestResolveDeviceFirstMatchWins(t *testing.T) {
	devices := []entity.Device{
		{ID: "inv_1", DeviceID: "DEV-DUP"},
		{ID: "inv_2", DeviceID: "DEV-DUP"},
	}

	got, err := ResolveDevice("DEV-DUP", devices)
	if err != nil {
		t.Fatalf("ResolveDevice error: %v", err)
	}
	if got.ID != "inv_1" {
		t.Errorf("want first device in list order, got %q", got.ID)
	}
}

func TestResolveDeviceSkipsEmptyIdentifiers(t *testing.T) {
	// A device with no barcode must not match an empty-ish scan, and an
	// empty identifier must not shadow a later real match.
	devices := []entity.Device{
		{ID: "inv_1", DeviceID: "DEV-001"},
		{ID: "inv_2", DeviceID: "DEV-002", Barcode: "BC-2"},
	}

	got, err := ResolveDevice("BC-2", devices)
	if err != nil {
		t.Fatalf("ResolveDevice error: %v", err)
	}
	if got.ID != "inv_2" {
		t.Errorf("want inv_2, got %q", got.ID)
	}
}

func TestResolveDeviceReturnsCopy(t *testing.T) {
	devices := []entity.Device{{ID: "inv_1", DeviceID: "DEV-001"}}

	got, _ := ResolveDevice("DEV-001", devices)
	got.Status = "mutated"
	if devices[0].Status == "mutated" {
		t.Error("resolved device aliases the input slice")
	}
}
