package entity

import "strings"

// Device status values as reported by the portal. The portal may return
// other free-text statuses; these are the ones the workflows act on.
const (
	StatusAssigned  = "assigned"
	StatusReturned  = "returned"
	StatusInStock   = "in_stock"
	StatusDefective = "defective"
	StatusDisabled  = "disabled"
)

// Device is the canonical projection of a portal inventory item.
// ID is the internal storage key used on every mutation endpoint;
// DeviceID is the derived display/scan identifier.
type Device struct {
	ID           string `json:"id"`
	DeviceID     string `json:"deviceId"`
	Status       string `json:"status"`
	CustomerID   string `json:"customer_id,omitempty"`
	Model        string `json:"model,omitempty"`
	Type         string `json:"type,omitempty"`
	ICCID        string `json:"iccid,omitempty"`
	IMEI         string `json:"imei,omitempty"`
	Barcode      string `json:"barcode,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
}

// IsSIM classifies the device: any ICCID, or "sim" appearing in the
// model text, marks it as a SIM card. Everything else is router/CPE class.
func (d *Device) IsSIM() bool {
	if d.ICCID != "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Model), "sim")
}

// Identifiers returns every field a scan may be matched against,
// in match order.
func (d *Device) Identifiers() []string {
	return []string{d.DeviceID, d.ID, d.ICCID, d.IMEI, d.Barcode, d.SerialNumber}
}

// LedgerCode is the identifier written to transaction records: the
// physical barcode when known, otherwise the display identifier.
func (d *Device) LedgerCode() string {
	if d.Barcode != "" {
		return d.Barcode
	}
	return d.DeviceID
}
