package http

import (
	"net/http"

	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type EMIHandler struct {
	emi    *service.EMIService
	tenure *service.TenureService
}

func NewEMIHandler(emi *service.EMIService, tenure *service.TenureService) *EMIHandler {
	return &EMIHandler{emi: emi, tenure: tenure}
}

func (h *EMIHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeRequest(w, r, loanSchema, &input) {
		return
	}

	result, err := h.emi.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *EMIHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeRequest(w, r, loanSchema, &input) {
		return
	}

	result, err := h.emi.Schedule(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *EMIHandler) CompareTenures(w http.ResponseWriter, r *http.Request) {
	var input domain.TenureComparisonInput
	if !decodeRequest(w, r, tenureSchema, &input) {
		return
	}

	result, err := h.tenure.Compare(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
