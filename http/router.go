package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fincalc-agent/logger"
)

type Handlers struct {
	Tax      *TaxHandler
	EMI      *EMIHandler
	SIP      *SIPHandler
	NetWorth *NetWorthHandler
	History  *HistoryHandler
}

type RouterOptions struct {
	// Limiter guards the calculation routes. Nil disables rate limiting.
	Limiter *RateLimiter
	Logger  logger.Logger
	// MetricsPath exposes the prometheus registry. Empty disables it.
	MetricsPath string
}

// NewRouter wires every calculator route onto a ServeMux and wraps it in
// request ID and access log middleware.
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	limited := func(fn http.HandlerFunc) http.Handler {
		if opts.Limiter == nil {
			return fn
		}
		return RateLimitMiddleware(opts.Limiter, fn)
	}

	mux := http.NewServeMux()
	mux.Handle("/tax/calculate", limited(h.Tax.CalculateTax))
	mux.Handle("/tax/compare", limited(h.Tax.CompareRegimes))
	mux.Handle("/emi/calculate", limited(h.EMI.CalculateEMI))
	mux.Handle("/emi/schedule", limited(h.EMI.Schedule))
	mux.Handle("/emi/compare-tenures", limited(h.EMI.CompareTenures))
	mux.Handle("/sip/calculate", limited(h.SIP.CalculateSIP))
	mux.Handle("/sip/projection", limited(h.SIP.Projection))
	mux.Handle("/networth/calculate", limited(h.NetWorth.CalculateNetWorth))
	if h.History != nil {
		mux.Handle("/history", limited(h.History.ListCalculations))
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.MetricsPath != "" {
		mux.Handle(opts.MetricsPath, promhttp.Handler())
	}

	return RequestIDMiddleware(AccessLogMiddleware(log, mux))
}
