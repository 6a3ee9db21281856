package server

import (
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/espn"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/fixture"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/thesportsdb"
)

func TestSelectProvider(t *testing.T) {
	if _, ok := selectProvider(config.Config{Provider: config.ProviderFixture}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture provider")
	}
	if _, ok := selectProvider(config.Config{Provider: config.ProviderESPN}, nil).(*espn.Client); !ok {
		t.Fatalf("expected espn provider")
	}
	if _, ok := selectProvider(config.Config{Provider: "unknown"}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected unknown provider to fall back to fixture")
	}
}

func TestSelectSecondary(t *testing.T) {
	if selectSecondary(config.Config{Provider: config.ProviderESPN}) != nil {
		t.Fatalf("expected no secondary when fallback disabled")
	}
	cfg := config.Config{Provider: config.ProviderFixture}
	cfg.Providers.FallbackEnabled = true
	if selectSecondary(cfg) != nil {
		t.Fatalf("expected no secondary behind the fixture provider")
	}
	cfg.Provider = config.ProviderESPN
	if _, ok := selectSecondary(cfg).(*thesportsdb.Client); !ok {
		t.Fatalf("expected thesportsdb secondary")
	}
}

func TestProviderFactoryBuildsChain(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov := factory.build(config.Config{Provider: config.ProviderFixture})
	if prov == nil || prov.Name() != fixture.ProviderName {
		t.Fatalf("expected instrumented fixture provider, got %v", prov)
	}

	cfg := config.Config{Provider: config.ProviderESPN}
	cfg.Providers.FallbackEnabled = true
	if got := factory.build(cfg).Name(); got != "espn+thesportsdb" {
		t.Fatalf("expected fallback chain name, got %q", got)
	}
}
