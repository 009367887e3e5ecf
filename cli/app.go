package cli

import (
	"context"
	"fmt"
	"net/http"

	"fincalc-agent/calculator"
	"fincalc-agent/config"
	httpLayer "fincalc-agent/http"
	"fincalc-agent/logger"
	"fincalc-agent/repository"
	"fincalc-agent/service"
)

// app is everything serve needs, assembled from configuration.
type app struct {
	handler http.Handler
	limiter *httpLayer.RateLimiter
	closers []func() error
}

func (a *app) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	a := &app{}

	rules := calculator.DefaultRules()
	if cfg.Tax.RulesFile != "" {
		loaded, err := calculator.LoadRulesFile(cfg.Tax.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("load tax rules: %w", err)
		}
		rules = loaded
	}
	log.Info("tax rules loaded", map[string]interface{}{"rules": rules.Name})

	var cache repository.CacheRepository
	switch cfg.Cache.Backend {
	case "memory":
		cache = repository.NewMemoryCache(cfg.Cache.MaxEntries)
	case "redis":
		rc := repository.NewRedisCache(repository.RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("connect redis at %s: %w", cfg.Redis.Address, err)
		}
		a.closers = append(a.closers, rc.Close)
		cache = rc
	}
	log.Info("cache configured", map[string]interface{}{
		"backend":     cfg.Cache.Backend,
		"ttl":         cfg.Cache.TTL.String(),
		"max_entries": cfg.Cache.MaxEntries,
	})

	history := repository.NewCalculationRepositoryMemory(cfg.History.Limit)
	deps := service.Deps{
		Repo:     history,
		Cache:    cache,
		CacheTTL: cfg.Cache.TTL,
		Logger:   log,
	}

	emi := service.NewEMIService(deps)
	handlers := httpLayer.Handlers{
		Tax:      httpLayer.NewTaxHandler(service.NewTaxService(rules, deps)),
		EMI:      httpLayer.NewEMIHandler(emi, service.NewTenureService(emi, deps)),
		SIP:      httpLayer.NewSIPHandler(service.NewSIPService(deps)),
		NetWorth: httpLayer.NewNetWorthHandler(service.NewNetWorthService(deps)),
		History:  httpLayer.NewHistoryHandler(history),
	}

	opts := httpLayer.RouterOptions{Logger: log}
	if cfg.RateLimit.Enabled {
		a.limiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
		opts.Limiter = a.limiter
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}

	a.handler = httpLayer.NewRouter(handlers, opts)
	return a, nil
}
