package http

import (
	"net/http"
	"strconv"

	"fincalc-agent/domain"
	"fincalc-agent/repository"
)

type HistoryHandler struct {
	repo repository.CalculationRepository
}

func NewHistoryHandler(repo repository.CalculationRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// ListCalculations serves GET /history?kind=<kind>&limit=<n>, newest first.
func (h *HistoryHandler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, ErrorBody{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, ErrorBody{Code: "INVALID_LIMIT", Message: "limit must be a positive integer", Field: "limit"})
			return
		}
		limit = n
	}

	kind := domain.CalculationKind(r.URL.Query().Get("kind"))
	calcs, err := h.repo.List(r.Context(), kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]domain.Calculation, 0, min(limit, len(calcs)))
	for i := len(calcs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, calcs[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculations": out})
}
