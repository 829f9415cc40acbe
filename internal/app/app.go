package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/cup-standings/internal/config"
	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"github.com/riskibarqy/cup-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cup-standings/internal/infrastructure/source"
	"github.com/riskibarqy/cup-standings/internal/interfaces/httpapi"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
	"github.com/riskibarqy/cup-standings/internal/platform/resilience"
	"github.com/riskibarqy/cup-standings/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	tournamentSvc := NewTournamentService(cfg, logger)
	handler := httpapi.NewHandler(tournamentSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// NewTournamentService wires the configured fixture source to an in-memory
// snapshot per request.
func NewTournamentService(cfg config.Config, logger *logging.Logger) *usecase.TournamentService {
	matchSource := source.New(SourceConfig(cfg), logger)
	return usecase.NewTournamentService(matchSource, newSnapshot, logger)
}

func SourceConfig(cfg config.Config) source.Config {
	return source.Config{
		Location:   cfg.MatchesSource,
		Timeout:    cfg.MatchesSourceTimeout,
		MaxRetries: cfg.MatchesSourceMaxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MatchesSourceCircuitEnabled,
			FailureThreshold: cfg.MatchesSourceCircuitFailures,
			OpenTimeout:      cfg.MatchesSourceCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MatchesSourceCircuitHalfOpenMax,
		},
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
	}
}

func newSnapshot(matches []match.Match) match.Repository {
	return memory.NewMatchRepository(matches)
}
