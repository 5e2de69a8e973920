package handler

import (
	"net/http"
	"strconv"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
)

const defaultActivityLimit = 50

// HistoryHandler serves read-only ledger and activity views scoped to
// the authenticated admin.
type HistoryHandler struct {
	swaps       repository.SwapLedgerRepository
	collections repository.CollectionLedgerRepository
	audit       repository.AuditRepository
}

// NewHistoryHandler creates the history endpoints.
func NewHistoryHandler(swaps repository.SwapLedgerRepository, collections repository.CollectionLedgerRepository, audit repository.AuditRepository) *HistoryHandler {
	return &HistoryHandler{swaps: swaps, collections: collections, audit: audit}
}

// Swaps returns the acting admin's swap records, most recent first.
func (h *HistoryHandler) Swaps(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	records, err := h.swaps.GetSwapHistory(r.Context(), identity.AdminID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

// Collections returns the acting agent's collection records, most
// recent first. Collection records are keyed by agent name, not id.
func (h *HistoryHandler) Collections(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	records, err := h.collections.GetCollectionHistory(r.Context(), identity.AdminName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

// Activity returns the admin's recent audit trail.
func (h *HistoryHandler) Activity(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.audit.ListRecent(r.Context(), identity.AdminName, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
