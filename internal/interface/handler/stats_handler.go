package handler

import (
	"net/http"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
)

// StatsHandler serves the monthly province histogram built from the
// whole collection ledger.
type StatsHandler struct {
	collections repository.CollectionLedgerRepository
}

// NewStatsHandler creates the statistics endpoint.
func NewStatsHandler(collections repository.CollectionLedgerRepository) *StatsHandler {
	return &StatsHandler{collections: collections}
}

// MonthlyCollections returns per-month Gauteng/Limpopo counts in
// chronological order plus running totals.
func (h *StatsHandler) MonthlyCollections(w http.ResponseWriter, r *http.Request) {
	records, err := h.collections.GetAllCollectionHistory(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	histogram := usecase.AggregateCollections(records)
	gauteng, limpopo := usecase.CollectionTotals(histogram)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"months": histogram,
		"totals": map[string]int{
			"gauteng": gauteng,
			"limpopo": limpopo,
		},
	})
}
