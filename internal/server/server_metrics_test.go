package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/testutil"
)

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics port, got %s", srv.Addr())
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(cfg, nil, &testutil.StubProvider{}, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if srv.metrics == nil || srv.metricsServer != nil {
		t.Fatalf("expected fallback metrics recorder without a metrics server")
	}
}

func TestNewServerWithMetricsDisabledSkipsServer(t *testing.T) {
	srv, err := newServerWithMetrics(testConfig(), nil, &testutil.StubProvider{}, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	defer shutdown(context.Background())

	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	provider := &testutil.StubProvider{}
	srv, err := newServerWithMetrics(cfg, nil, provider, rec)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for injected recorder")
	}

	if _, err := srv.service.Scoreboard(context.Background(), "nba"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if rec.ProviderCalls("stub") != 1 {
		t.Fatalf("expected provider call recorded, got %d", rec.ProviderCalls("stub"))
	}
	if rec.CacheMisses("scoreboards") != 1 {
		t.Fatalf("expected scoreboard cache miss recorded")
	}
}
