package http

import (
	"net/http"

	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type NetWorthHandler struct {
	service *service.NetWorthService
}

func NewNetWorthHandler(service *service.NetWorthService) *NetWorthHandler {
	return &NetWorthHandler{service: service}
}

func (h *NetWorthHandler) CalculateNetWorth(w http.ResponseWriter, r *http.Request) {
	var input domain.NetWorthInput
	if !decodeRequest(w, r, netWorthSchema, &input) {
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
