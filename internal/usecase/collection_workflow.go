package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
	"github.com/TmanScript/umoja-swap-collection/pkg/metrics"
	"github.com/TmanScript/umoja-swap-collection/pkg/utils"
)

// CollectionWorkflow pairs an optional router and an optional SIM scan
// into one combined return. Committing returns both devices, disables
// the customer linked to the router, and appends one collection record.
// Failures leave both scan slots populated for a retry and write no
// ledger record; that asymmetry with the swap workflow is intentional.
type CollectionWorkflow struct {
	inventory repository.InventoryRepository
	ledger    repository.CollectionLedgerRepository
	audit     repository.AuditRepository
	logger    logger.Logger
	metrics   *metrics.Metrics
	identity  Identity

	router *entity.Device
	sim    *entity.Device
}

// NewCollectionWorkflow creates a collection session for one agent.
func NewCollectionWorkflow(
	inventory repository.InventoryRepository,
	ledger repository.CollectionLedgerRepository,
	audit repository.AuditRepository,
	log logger.Logger,
	m *metrics.Metrics,
	identity Identity,
) *CollectionWorkflow {
	return &CollectionWorkflow{
		inventory: inventory,
		ledger:    ledger,
		audit:     audit,
		logger:    log,
		metrics:   m,
		identity:  identity,
	}
}

// Router returns the staged router scan, if any.
func (w *CollectionWorkflow) Router() *entity.Device { return w.router }

// SIM returns the staged SIM scan, if any.
func (w *CollectionWorkflow) SIM() *entity.Device { return w.sim }

// ScanRouter resolves a scan into the router slot. A device classified
// as a SIM is rejected here.
func (w *CollectionWorkflow) ScanRouter(ctx context.Context, scan string) (*entity.Device, error) {
	device, err := w.resolve(ctx, scan)
	if err != nil {
		w.rejectScan(ctx, "Router scan error", err)
		return nil, err
	}

	if device.IsSIM() {
		err := &entity.ValidationError{
			Reason: fmt.Sprintf("scanned item (%s) appears to be a SIM, not a router", device.DeviceID),
		}
		w.rejectScan(ctx, "Router scan error", err)
		return nil, err
	}

	w.router = device
	return device, nil
}

// ScanSIM resolves a scan into the SIM slot. Any resolvable device is
// accepted; the slot is intentionally permissive.
func (w *CollectionWorkflow) ScanSIM(ctx context.Context, scan string) (*entity.Device, error) {
	device, err := w.resolve(ctx, scan)
	if err != nil {
		w.rejectScan(ctx, "SIM scan error", err)
		return nil, err
	}

	w.sim = device
	return device, nil
}

// ClearRouter empties the router slot.
func (w *CollectionWorkflow) ClearRouter() { w.router = nil }

// ClearSIM empties the SIM slot.
func (w *CollectionWorkflow) ClearSIM() { w.sim = nil }

func (w *CollectionWorkflow) resolve(ctx context.Context, scan string) (*entity.Device, error) {
	inventory, err := w.inventory.GetInventory(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ResolveDevice(scan, inventory)
}

func (w *CollectionWorkflow) rejectScan(ctx context.Context, message string, err error) {
	if w.metrics != nil {
		w.metrics.ScanRejections.WithLabelValues("collection", rejectionReason(err)).Inc()
	}
	w.auditEvent(ctx, entity.AuditLevelError, message, err.Error())
}

// Confirm commits the collection: returns the staged devices, disables
// the customer linked to the router (SIMs never trigger disablement),
// and appends one collection record covering both items. On any failure
// the slots stay populated and no partial rollback is attempted.
func (w *CollectionWorkflow) Confirm(ctx context.Context) (*entity.CollectionRecord, error) {
	if w.router == nil && w.sim == nil {
		return nil, &entity.ValidationError{Reason: "scan at least one item before confirming"}
	}

	record, err := w.commit(ctx)
	if err != nil {
		if w.metrics != nil {
			w.metrics.CollectionsFailed.Inc()
		}
		w.auditEvent(ctx, entity.AuditLevelError, "Collection failed", err.Error())
		return nil, err
	}

	w.router = nil
	w.sim = nil
	if w.metrics != nil {
		w.metrics.CollectionsCompleted.Inc()
	}
	w.auditEvent(ctx, entity.AuditLevelSuccess, "Collection completed",
		fmt.Sprintf("router=%s sim=%s", record.Barcode, record.SIM))
	return record, nil
}

func (w *CollectionWorkflow) commit(ctx context.Context) (*entity.CollectionRecord, error) {
	customerID := ""
	if w.router != nil && w.router.CustomerID != "" {
		customerID = w.router.CustomerID
	} else if w.sim != nil && w.sim.CustomerID != "" {
		customerID = w.sim.CustomerID
	}

	// Name lookup is best-effort: a missing or failing customer read
	// falls back to "Unknown" rather than aborting the collection.
	customerName := "Unknown"
	if customerID != "" {
		customer, err := w.inventory.GetCustomer(ctx, customerID)
		if err != nil {
			w.logger.Warn("Customer lookup failed, recording as Unknown", "customer", customerID, "error", err)
		} else if customer != nil {
			customerName = customer.DisplayName()
		}
	}

	routerBarcode := ""
	if w.router != nil {
		routerBarcode = w.router.LedgerCode()
		w.auditEvent(ctx, entity.AuditLevelInfo, "Processing router", w.router.DeviceID)
		if err := w.inventory.ReturnDevice(ctx, w.router.ID); err != nil {
			return nil, err
		}
		if w.router.CustomerID != "" {
			if err := w.inventory.DisableCustomer(ctx, w.router.CustomerID); err != nil {
				return nil, err
			}
			w.auditEvent(ctx, entity.AuditLevelSuccess, "Customer disabled", w.router.CustomerID)
		}
	}

	simBarcode := ""
	if w.sim != nil {
		simBarcode = w.sim.LedgerCode()
		w.auditEvent(ctx, entity.AuditLevelInfo, "Processing SIM", w.sim.DeviceID)
		// SIMs are only returned; no customer disablement.
		if err := w.inventory.ReturnDevice(ctx, w.sim.ID); err != nil {
			return nil, err
		}
	}

	if customerID == "" {
		customerID = "N/A"
	}

	record := &entity.CollectionRecord{
		CustomerID: customerID,
		FullName:   customerName,
		Barcode:    routerBarcode,
		SIM:        simBarcode,
		Agent:      w.identity.AdminName,
		Province:   entity.ProvinceForAgent(w.identity.AdminName),
		Date:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := w.ledger.RecordCollection(ctx, record); err != nil {
		if w.metrics != nil {
			w.metrics.LedgerWriteFailures.WithLabelValues("collection_history").Inc()
		}
		return nil, err
	}
	return record, nil
}

func (w *CollectionWorkflow) auditEvent(ctx context.Context, level, message, detail string) {
	if w.audit == nil {
		return
	}
	err := w.audit.Append(ctx, &entity.AuditEvent{
		Kind:    entity.AuditKindCollection,
		Level:   level,
		Message: message,
		Detail:  detail,
		Admin:   w.identity.AdminName,
	})
	if err != nil {
		w.logger.Warn("Audit append failed", "error", err)
	}
}
