package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/cup-standings/internal/config"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled:   false,
		PprofEnabled:     false,
		PyroscopeEnabled: false,
		ServiceName:      "cup-standings-api",
		ServiceVersion:   "dev",
		AppEnv:           config.EnvDev,
	}

	rt, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if rt.pprofServer != nil {
		t.Fatalf("pprof server must not start when disabled")
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown observability: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	shutdown := InitUptrace(config.Config{UptraceEnabled: true}, logging.NewNop())
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestRuntime_NilShutdown(t *testing.T) {
	var rt *Runtime
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil runtime shutdown: %v", err)
	}
}
