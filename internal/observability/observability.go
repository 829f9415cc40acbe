package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/cup-standings/internal/config"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
)

// Runtime holds the process-wide telemetry started for one service instance.
type Runtime struct {
	logger          *logging.Logger
	uptraceShutdown func(context.Context) error
	pprofServer     *http.Server
	pyroscopeStop   func() error
}

func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rt := &Runtime{
		logger:          logger,
		uptraceShutdown: InitUptrace(cfg, logger),
		pprofServer:     StartPprofServer(cfg, logger),
	}

	stop, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	rt.pyroscopeStop = stop

	return rt, nil
}

// Shutdown stops every component and flushes pending telemetry.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	if r.pyroscopeStop != nil {
		if err := r.pyroscopeStop(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
	}
	if err := stopPprofServer(ctx, r.pprofServer, r.logger); err != nil {
		errs = append(errs, fmt.Errorf("stop pprof: %w", err))
	}
	if r.uptraceShutdown != nil {
		if err := r.uptraceShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
	}
	return errors.Join(errs...)
}
