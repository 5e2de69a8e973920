package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
	"github.com/TmanScript/umoja-swap-collection/pkg/metrics"
	"github.com/TmanScript/umoja-swap-collection/pkg/utils"
)

// SwapStep is one state of the swap wizard. Steps advance in strict
// forward order; no skipping.
type SwapStep string

const (
	StepSelectCustomer  SwapStep = "select-customer"
	StepSelectOldDevice SwapStep = "select-old-device"
	StepScanNewDevice   SwapStep = "scan-new-device"
	StepConfirm         SwapStep = "confirm"
)

// Identity carries the acting admin through every workflow entry point.
type Identity struct {
	AdminID   string
	AdminName string
}

// SwapWorkflow drives one admin's device-swap wizard: find a customer,
// pick the device being returned, scan the replacement, confirm. Every
// attempt, success or failure, produces exactly one swap ledger record.
// The workflow holds in-memory state only; abandoning it loses nothing
// beyond the selection.
type SwapWorkflow struct {
	inventory repository.InventoryRepository
	ledger    repository.SwapLedgerRepository
	audit     repository.AuditRepository
	logger    logger.Logger
	metrics   *metrics.Metrics
	identity  Identity

	step            SwapStep
	customers       []entity.Customer
	customer        *entity.Customer
	customerDevices []entity.Device
	oldDevice       *entity.Device
	newDevice       *entity.Device
}

// NewSwapWorkflow creates a swap wizard for one admin session.
func NewSwapWorkflow(
	inventory repository.InventoryRepository,
	ledger repository.SwapLedgerRepository,
	audit repository.AuditRepository,
	log logger.Logger,
	m *metrics.Metrics,
	identity Identity,
) *SwapWorkflow {
	return &SwapWorkflow{
		inventory: inventory,
		ledger:    ledger,
		audit:     audit,
		logger:    log,
		metrics:   m,
		identity:  identity,
		step:      StepSelectCustomer,
	}
}

// Step returns the current wizard state.
func (w *SwapWorkflow) Step() SwapStep { return w.step }

// SelectedCustomer returns the customer chosen in step one, if any.
func (w *SwapWorkflow) SelectedCustomer() *entity.Customer { return w.customer }

// OldDevice returns the device selected for return, if any.
func (w *SwapWorkflow) OldDevice() *entity.Device { return w.oldDevice }

// NewDevice returns the validated replacement device, if any.
func (w *SwapWorkflow) NewDevice() *entity.Device { return w.newDevice }

// CustomerDevices returns the selected customer's assigned devices.
func (w *SwapWorkflow) CustomerDevices() []entity.Device { return w.customerDevices }

// SearchCustomers fetches the customer set and filters it by a
// free-text term matched against name and email fields.
func (w *SwapWorkflow) SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error) {
	if w.step != StepSelectCustomer {
		return nil, &entity.ValidationError{Reason: "customer search is only available before a customer is selected"}
	}

	customers, err := w.inventory.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	w.customers = customers

	results := make([]entity.Customer, 0)
	for _, c := range customers {
		if c.MatchesSearch(term) {
			results = append(results, c)
		}
	}
	return results, nil
}

// SelectCustomer picks a customer from the last search and loads that
// customer's assigned devices, advancing to old-device selection.
func (w *SwapWorkflow) SelectCustomer(ctx context.Context, customerID string) ([]entity.Device, error) {
	if w.step != StepSelectCustomer {
		return nil, &entity.ValidationError{Reason: "a customer is already selected; reset the wizard to change customer"}
	}

	var customer *entity.Customer
	for i := range w.customers {
		if w.customers[i].ID == customerID {
			customer = &w.customers[i]
			break
		}
	}
	if customer == nil {
		return nil, &entity.NotFoundError{Scan: customerID}
	}

	inventory, err := w.inventory.GetInventory(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]entity.Device, 0)
	for _, d := range inventory {
		if d.CustomerID == customer.ID && d.Status == entity.StatusAssigned {
			owned = append(owned, d)
		}
	}

	w.customer = customer
	w.customerDevices = owned
	w.step = StepSelectOldDevice
	return owned, nil
}

// SelectOldDevice picks the device being returned from the customer's
// pre-filtered owned list and advances to the scan step.
func (w *SwapWorkflow) SelectOldDevice(deviceID string) error {
	if w.step != StepSelectOldDevice {
		return &entity.ValidationError{Reason: "old-device selection requires a selected customer"}
	}

	for i := range w.customerDevices {
		if w.customerDevices[i].ID == deviceID {
			w.oldDevice = &w.customerDevices[i]
			w.step = StepScanNewDevice
			return nil
		}
	}
	return &entity.NotFoundError{Scan: deviceID}
}

// ScanNewDevice resolves the scanned text against the global inventory
// and validates the match as an assignable replacement. Any failure is
// logged to the swap ledger as a failed attempt (when a customer and an
// old device are already chosen) and the wizard stays on this step for
// a retry.
func (w *SwapWorkflow) ScanNewDevice(ctx context.Context, scan string) error {
	if w.step != StepScanNewDevice {
		return &entity.ValidationError{Reason: "scanning requires a customer and an old device to be selected first"}
	}

	device, err := w.lookupReplacement(ctx, scan)
	if err != nil {
		if w.metrics != nil {
			w.metrics.ScanRejections.WithLabelValues("swap", rejectionReason(err)).Inc()
		}
		// Best-effort failed-attempt record; its own failure is logged
		// and dropped.
		if logErr := w.writeAttempt(ctx, scan, err.Error()); logErr != nil {
			w.logger.Error("Failed to log swap validation error", "error", logErr)
		}
		w.auditEvent(ctx, entity.AuditLevelError, "Swap scan rejected", err.Error())
		return err
	}

	w.newDevice = device
	w.step = StepConfirm
	return nil
}

func (w *SwapWorkflow) lookupReplacement(ctx context.Context, scan string) (*entity.Device, error) {
	inventory, err := w.inventory.GetInventory(ctx)
	if err != nil {
		return nil, err
	}

	device, err := utils.ResolveDevice(scan, inventory)
	if err != nil {
		return nil, err
	}

	if device.Status == entity.StatusAssigned && device.CustomerID != "" {
		return nil, &entity.ValidationError{
			Reason: fmt.Sprintf("device %s is already assigned to another customer", device.DeviceID),
		}
	}
	if device.Status == entity.StatusDefective {
		return nil, &entity.ValidationError{
			Reason: fmt.Sprintf("device %s is marked as defective", device.DeviceID),
		}
	}
	return device, nil
}

// Confirm commits the swap: return the old device, assign the new one,
// append the success record. Remote failures still get a best-effort
// failure record before the original error is surfaced; a foreign-key
// rejection of the admin id is reported with a specific message. On
// success the wizard resets to customer selection.
func (w *SwapWorkflow) Confirm(ctx context.Context) (*entity.SwapRecord, error) {
	if w.step != StepConfirm || w.customer == nil || w.oldDevice == nil || w.newDevice == nil {
		return nil, &entity.ValidationError{Reason: "nothing to confirm: the wizard has not reached the confirm step"}
	}
	if strings.TrimSpace(w.identity.AdminID) == "" || w.identity.AdminID == "undefined" {
		return nil, &entity.ConfigurationError{Reason: "session error: admin id missing, sign out and sign in again"}
	}

	oldDevice, newDevice := w.oldDevice, w.newDevice

	if err := w.inventory.ReturnDevice(ctx, oldDevice.ID); err != nil {
		return nil, w.confirmFailure(ctx, err)
	}
	if err := w.inventory.AssignDevice(ctx, newDevice.ID, w.customer.Key()); err != nil {
		return nil, w.confirmFailure(ctx, err)
	}

	record := w.buildRecord(newDevice.LedgerCode(), entity.SwapStatusSuccess)
	if err := w.ledger.RecordSwap(ctx, record); err != nil {
		if w.metrics != nil {
			w.metrics.LedgerWriteFailures.WithLabelValues("swap_history").Inc()
		}
		return nil, w.confirmFailure(ctx, err)
	}

	if w.metrics != nil {
		w.metrics.SwapsCompleted.Inc()
	}
	w.auditEvent(ctx, entity.AuditLevelSuccess, "Swap completed",
		fmt.Sprintf("returned %s, assigned %s", oldDevice.DeviceID, newDevice.DeviceID))
	w.logger.Info("Swap completed",
		"customer", w.customer.ID,
		"oldDevice", oldDevice.DeviceID,
		"newDevice", newDevice.DeviceID)

	w.Reset()
	return record, nil
}

// confirmFailure records the failed attempt (best-effort) and wraps the
// cause for the caller.
func (w *SwapWorkflow) confirmFailure(ctx context.Context, cause error) error {
	if logErr := w.writeAttempt(ctx, w.newDevice.LedgerCode(), cause.Error()); logErr != nil {
		w.logger.Error("Failed to log swap failure record", "error", logErr)
	}
	if w.metrics != nil {
		w.metrics.SwapsFailed.Inc()
	}
	w.auditEvent(ctx, entity.AuditLevelError, "Swap failed", cause.Error())

	if isForeignKeyViolation(cause) {
		return fmt.Errorf("ledger rejected admin id %s: no active admin record matches this session, sign out and sign in again: %w",
			w.identity.AdminID, cause)
	}
	return cause
}

// writeAttempt appends one ledger record for the current attempt. The
// newDevice column carries the scanned input when validation failed
// before a device was resolved. Nothing is written until a customer and
// an old device are chosen.
func (w *SwapWorkflow) writeAttempt(ctx context.Context, newDevice, status string) error {
	if w.customer == nil || w.oldDevice == nil || strings.TrimSpace(w.identity.AdminID) == "" {
		return nil
	}
	return w.ledger.RecordSwap(ctx, w.buildRecord(newDevice, status))
}

func (w *SwapWorkflow) buildRecord(newDevice, status string) *entity.SwapRecord {
	return &entity.SwapRecord{
		CustomerID:   w.customer.Key(),
		CustomerName: w.customer.DisplayName(),
		AdminID:      utils.CoerceAdminID(w.identity.AdminID),
		AdminName:    w.identity.AdminName,
		OldDevice:    w.oldDevice.LedgerCode(),
		NewDevice:    newDevice,
		Date:         time.Now().UTC().Format(time.RFC3339),
		Status:       status,
	}
}

// Back steps the wizard one state backwards, discarding the selection
// made at the current step.
func (w *SwapWorkflow) Back() {
	switch w.step {
	case StepSelectOldDevice:
		w.customer = nil
		w.customerDevices = nil
		w.step = StepSelectCustomer
	case StepScanNewDevice:
		w.oldDevice = nil
		w.step = StepSelectOldDevice
	case StepConfirm:
		w.newDevice = nil
		w.step = StepScanNewDevice
	}
}

// Reset clears all search and selection state back to customer
// selection.
func (w *SwapWorkflow) Reset() {
	w.step = StepSelectCustomer
	w.customers = nil
	w.customer = nil
	w.customerDevices = nil
	w.oldDevice = nil
	w.newDevice = nil
}

func (w *SwapWorkflow) auditEvent(ctx context.Context, level, message, detail string) {
	if w.audit == nil {
		return
	}
	err := w.audit.Append(ctx, &entity.AuditEvent{
		Kind:    entity.AuditKindSwap,
		Level:   level,
		Message: message,
		Detail:  detail,
		Admin:   w.identity.AdminName,
	})
	if err != nil {
		w.logger.Warn("Audit append failed", "error", err)
	}
}

// isForeignKeyViolation detects a ledger rejection of the acting-admin
// foreign key, either by postgres error code or by message text.
func isForeignKeyViolation(err error) bool {
	var ledgerErr *entity.LedgerWriteError
	if errors.As(err, &ledgerErr) && ledgerErr.Code == pgerrcode.ForeignKeyViolation {
		return true
	}
	return strings.Contains(err.Error(), "foreign key constraint")
}

func rejectionReason(err error) string {
	var notFound *entity.NotFoundError
	var validation *entity.ValidationError
	switch {
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &validation):
		return "validation"
	default:
		return "remote"
	}
}
