package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"fincalc-agent/domain"
	"fincalc-agent/logger"
	"fincalc-agent/metrics"
	"fincalc-agent/repository"
)

// Deps are shared by every calculator service. Repo and Cache may be nil.
type Deps struct {
	Repo     repository.CalculationRepository
	Cache    repository.CacheRepository
	CacheTTL time.Duration
	Logger   logger.Logger
}

type recorder struct {
	repo  repository.CalculationRepository
	cache repository.CacheRepository
	ttl   time.Duration
	log   logger.Logger
}

func newRecorder(deps Deps) *recorder {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &recorder{
		repo:  deps.Repo,
		cache: deps.Cache,
		ttl:   deps.CacheTTL,
		log:   log,
	}
}

// cacheKey hashes the canonical JSON of the input; map keys are sorted by
// encoding/json so equal inputs share a key.
func cacheKey(kind domain.CalculationKind, input any) (string, bool) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", false
	}
	return string(kind) + ":" + strconv.FormatUint(xxhash.Sum64(raw), 16), true
}

func (r *recorder) reject(kind domain.CalculationKind, err error) error {
	code := "UNKNOWN"
	if verr, ok := AsValidation(err); ok {
		code = string(verr.Code)
	}
	metrics.CalculationErrors.WithLabelValues(string(kind), code).Inc()
	r.log.Debug("calculation rejected", map[string]interface{}{
		"kind":  kind,
		"error": err.Error(),
	})
	return err
}

// run serves a validated input from cache or computes, logs and caches it.
// Persistence and cache failures are logged and never fail the call.
func run[In, Out any](ctx context.Context, r *recorder, kind domain.CalculationKind, input In, compute func() Out) Out {
	start := time.Now()
	defer func() {
		metrics.CalculationDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}()

	key, keyed := cacheKey(kind, input)
	if r.cache != nil && keyed {
		if raw, ok := r.cache.Get(ctx, key); ok {
			var cached Out
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				metrics.CacheLookups.WithLabelValues(string(kind), "hit").Inc()
				return cached
			}
		}
		metrics.CacheLookups.WithLabelValues(string(kind), "miss").Inc()
	}

	result := compute()
	metrics.CalculationsTotal.WithLabelValues(string(kind)).Inc()
	r.log.Debug("calculation completed", map[string]interface{}{"kind": kind})

	if r.repo != nil {
		calc := domain.Calculation{Kind: kind, Input: input, Result: result}
		if err := r.repo.Save(ctx, calc); err != nil {
			r.log.WithError(err).Warn("failed to save calculation", map[string]interface{}{"kind": kind})
		}
	}

	if r.cache != nil && keyed {
		if raw, err := json.Marshal(result); err == nil {
			if err := r.cache.Set(ctx, key, string(raw), r.ttl); err != nil {
				r.log.WithError(err).Warn("failed to cache calculation", map[string]interface{}{"kind": kind, "key": key})
			}
		}
	}
	return result
}
