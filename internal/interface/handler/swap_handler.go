package handler

import (
	"net/http"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
)

// SwapHandler exposes the swap wizard over HTTP. Each admin drives one
// wizard instance held in the session registry.
type SwapHandler struct {
	factory  *WorkflowFactory
	sessions *SessionRegistry
}

// NewSwapHandler creates the swap wizard endpoints.
func NewSwapHandler(factory *WorkflowFactory, sessions *SessionRegistry) *SwapHandler {
	return &SwapHandler{factory: factory, sessions: sessions}
}

type swapState struct {
	Step            usecase.SwapStep `json:"step"`
	Customer        *entity.Customer `json:"customer,omitempty"`
	CustomerDevices []entity.Device  `json:"customer_devices,omitempty"`
	OldDevice       *entity.Device   `json:"old_device,omitempty"`
	NewDevice       *entity.Device   `json:"new_device,omitempty"`
}

func stateOf(wf *usecase.SwapWorkflow) swapState {
	return swapState{
		Step:            wf.Step(),
		Customer:        wf.SelectedCustomer(),
		CustomerDevices: wf.CustomerDevices(),
		OldDevice:       wf.OldDevice(),
		NewDevice:       wf.NewDevice(),
	}
}

// State returns the wizard's current step and selections.
func (h *SwapHandler) State(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	writeJSON(w, http.StatusOK, stateOf(s.Swap(h.factory)))
}

// SearchCustomers runs the free-text customer search of step one. The
// term comes from the "term" query parameter; empty matches everyone.
func (h *SwapHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	results, err := s.Swap(h.factory).SearchCustomers(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"customers": results})
}

// SelectCustomer picks the customer and returns their assigned devices.
func (h *SwapHandler) SelectCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID string `json:"customer_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Swap(h.factory)
	devices, err := wf.SelectCustomer(r.Context(), req.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"devices": devices,
		"state":   stateOf(wf),
	})
}

// SelectOldDevice picks the device being returned.
func (h *SwapHandler) SelectOldDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID string `json:"device_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Swap(h.factory)
	if err := wf.SelectOldDevice(req.DeviceID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(wf))
}

// ScanNewDevice validates the scanned replacement. Rejections are also
// written to the swap ledger as failed attempts; the wizard stays on the
// scan step.
func (h *SwapHandler) ScanNewDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scan string `json:"scan"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Swap(h.factory)
	if err := wf.ScanNewDevice(r.Context(), req.Scan); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(wf))
}

// Confirm commits the swap and returns the success ledger record.
func (h *SwapHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Swap(h.factory)
	record, err := wf.Confirm(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"record": record,
		"state":  stateOf(wf),
	})
}

// Back steps the wizard one state backwards.
func (h *SwapHandler) Back(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Swap(h.factory)
	wf.Back()
	writeJSON(w, http.StatusOK, stateOf(wf))
}

// Reset clears the wizard back to customer selection.
func (h *SwapHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Swap(h.factory)
	wf.Reset()
	writeJSON(w, http.StatusOK, stateOf(wf))
}
