package source

import (
	"strings"
	"time"

	"github.com/riskibarqy/cup-standings/internal/platform/logging"
	"github.com/riskibarqy/cup-standings/internal/platform/resilience"
	"github.com/riskibarqy/cup-standings/internal/usecase"
)

type Config struct {
	Location       string
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
	CacheEnabled   bool
	CacheTTL       time.Duration
}

// New picks the HTTP source for http(s) locations and the file source otherwise,
// wrapping either in a raw-text cache when enabled.
func New(cfg Config, logger *logging.Logger) usecase.MatchSource {
	if logger == nil {
		logger = logging.Default()
	}

	location := strings.TrimSpace(cfg.Location)
	var out usecase.MatchSource
	if IsRemote(location) {
		out = NewHTTPSource(HTTPConfig{
			URL:            location,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		})
	} else {
		out = NewFileSource(location)
	}

	if cfg.CacheEnabled {
		out = NewCachedSource(out, location, cfg.CacheTTL)
	}

	logger.Info("fixture source configured",
		"remote", IsRemote(location),
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL,
	)
	return out
}

func IsRemote(location string) bool {
	lower := strings.ToLower(strings.TrimSpace(location))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
