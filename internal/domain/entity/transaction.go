package entity

import "time"

// SwapStatusSuccess is the literal status written for a completed swap.
// Any other status value is the failure message of the attempt.
const SwapStatusSuccess = "success"

// SwapRecord is one row of the swap ledger. Exactly one record exists
// per swap attempt, successful or not.
type SwapRecord struct {
	ID           uint   `json:"id,omitempty"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	AdminID      string `json:"admin_id"`
	AdminName    string `json:"admin_name"`
	OldDevice    string `json:"old_device"`
	NewDevice    string `json:"new_device"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

// Succeeded reports whether the record describes a completed swap.
func (r *SwapRecord) Succeeded() bool {
	return r.Status == SwapStatusSuccess
}

// CollectionRecord is one row of the collection ledger, covering a
// paired router/SIM return. CustomerID is "N/A" and FullName "Unknown"
// when the items carried no resolvable owner.
type CollectionRecord struct {
	ID         uint      `json:"id,omitempty"`
	CustomerID string    `json:"customer_id"`
	FullName   string    `json:"full_name"`
	Barcode    string    `json:"barcode"`
	SIM        string    `json:"sim"`
	Agent      string    `json:"agent"`
	Province   string    `json:"province"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// MonthlyProvinceCount is one bucket of the collection histogram.
type MonthlyProvinceCount struct {
	Label   string `json:"label"`
	Gauteng int    `json:"gauteng"`
	Limpopo int    `json:"limpopo"`
}
