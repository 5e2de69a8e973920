package entity

import "fmt"

// NotFoundError indicates a scanned identifier matched no device in the
// inventory set it was resolved against.
type NotFoundError struct {
	Scan string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("device with barcode/ID %q not found in inventory", e.Scan)
}

// ValidationError indicates a business-rule rejection of an otherwise
// resolvable device or workflow action.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// RemoteError is any non-2xx response from the portal gateway.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("portal API error %d: %s", e.Status, e.Body)
}

// LedgerWriteError indicates the ledger was reachable but rejected an
// insert. Code carries the backend error code when the driver exposes one.
type LedgerWriteError struct {
	Op   string
	Code string
	Err  error
}

func (e *LedgerWriteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s failed: %v (code %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *LedgerWriteError) Unwrap() error {
	return e.Err
}

// ConfigurationError indicates a missing or invalid admin identity or
// other operator-fixable setup problem.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}
