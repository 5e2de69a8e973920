package handler

import (
	"net/http"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
)

// CollectionHandler exposes the two-slot collection workflow.
type CollectionHandler struct {
	factory  *WorkflowFactory
	sessions *SessionRegistry
}

// NewCollectionHandler creates the collection endpoints.
func NewCollectionHandler(factory *WorkflowFactory, sessions *SessionRegistry) *CollectionHandler {
	return &CollectionHandler{factory: factory, sessions: sessions}
}

type collectionState struct {
	Router *entity.Device `json:"router,omitempty"`
	SIM    *entity.Device `json:"sim,omitempty"`
}

func collectionStateOf(wf *usecase.CollectionWorkflow) collectionState {
	return collectionState{Router: wf.Router(), SIM: wf.SIM()}
}

// State returns the staged scan slots.
func (h *CollectionHandler) State(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	writeJSON(w, http.StatusOK, collectionStateOf(s.Collection(h.factory)))
}

// ScanRouter stages a router scan; SIM-classified devices are rejected.
func (h *CollectionHandler) ScanRouter(w http.ResponseWriter, r *http.Request) {
	h.scan(w, r, func(wf *usecase.CollectionWorkflow, scan string) (*entity.Device, error) {
		return wf.ScanRouter(r.Context(), scan)
	})
}

// ScanSIM stages a SIM scan.
func (h *CollectionHandler) ScanSIM(w http.ResponseWriter, r *http.Request) {
	h.scan(w, r, func(wf *usecase.CollectionWorkflow, scan string) (*entity.Device, error) {
		return wf.ScanSIM(r.Context(), scan)
	})
}

func (h *CollectionHandler) scan(w http.ResponseWriter, r *http.Request, do func(*usecase.CollectionWorkflow, string) (*entity.Device, error)) {
	var req struct {
		Scan string `json:"scan"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Collection(h.factory)
	if _, err := do(wf, req.Scan); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionStateOf(wf))
}

// ClearRouter empties the router slot.
func (h *CollectionHandler) ClearRouter(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Collection(h.factory)
	wf.ClearRouter()
	writeJSON(w, http.StatusOK, collectionStateOf(wf))
}

// ClearSIM empties the SIM slot.
func (h *CollectionHandler) ClearSIM(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Collection(h.factory)
	wf.ClearSIM()
	writeJSON(w, http.StatusOK, collectionStateOf(wf))
}

// Confirm commits the collection and returns the ledger record. On
// failure the slots stay staged for a retry.
func (h *CollectionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Acquire(identityFrom(r))
	defer s.Release()

	wf := s.Collection(h.factory)
	record, err := wf.Confirm(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"record": record,
		"state":  collectionStateOf(wf),
	})
}
