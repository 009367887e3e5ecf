package http

import (
	"net/http"

	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type TaxHandler struct {
	service *service.TaxService
}

func NewTaxHandler(service *service.TaxService) *TaxHandler {
	return &TaxHandler{service: service}
}

func (h *TaxHandler) CalculateTax(w http.ResponseWriter, r *http.Request) {
	var input domain.TaxInput
	if !decodeRequest(w, r, taxSchema, &input) {
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *TaxHandler) CompareRegimes(w http.ResponseWriter, r *http.Request) {
	var input domain.TaxInput
	if !decodeRequest(w, r, taxSchema, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
