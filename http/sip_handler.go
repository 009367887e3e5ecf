package http

import (
	"net/http"

	"fincalc-agent/domain"
	"fincalc-agent/service"
)

type SIPHandler struct {
	service *service.SIPService
}

func NewSIPHandler(service *service.SIPService) *SIPHandler {
	return &SIPHandler{service: service}
}

func (h *SIPHandler) CalculateSIP(w http.ResponseWriter, r *http.Request) {
	var input domain.SIPInput
	if !decodeRequest(w, r, sipSchema, &input) {
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *SIPHandler) Projection(w http.ResponseWriter, r *http.Request) {
	var input domain.SIPInput
	if !decodeRequest(w, r, sipSchema, &input) {
		return
	}

	result, err := h.service.Projection(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
