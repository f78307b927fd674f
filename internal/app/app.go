package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/antimaLinux/kickscraper/external/kickest"
	"github.com/antimaLinux/kickscraper/internal/config"
	"github.com/antimaLinux/kickscraper/internal/domain/formation"
	"github.com/antimaLinux/kickscraper/internal/domain/playerstats"
	"github.com/antimaLinux/kickscraper/internal/domain/scoring"
	"github.com/antimaLinux/kickscraper/internal/domain/team"
	cacherepo "github.com/antimaLinux/kickscraper/internal/infrastructure/repository/cache"
	"github.com/antimaLinux/kickscraper/internal/infrastructure/repository/memory"
	"github.com/antimaLinux/kickscraper/internal/infrastructure/repository/postgres"
	"github.com/antimaLinux/kickscraper/internal/interfaces/httpapi"
	platformcache "github.com/antimaLinux/kickscraper/internal/platform/cache"
	idgen "github.com/antimaLinux/kickscraper/internal/platform/id"
	"github.com/antimaLinux/kickscraper/internal/platform/logging"
	"github.com/antimaLinux/kickscraper/internal/platform/resilience"
	"github.com/antimaLinux/kickscraper/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. The returned cleanup closes the database handle
// when the postgres driver is active.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if httpLogger == nil {
		httpLogger = slog.Default()
	}

	catalog := memory.NewFormationCatalog(memory.SeedFormations())

	teamRepo, statsRepo, cleanup, err := buildRepositories(cfg, catalog)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := platformcache.NewStore(cfg.CacheTTL)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		statsRepo = cacherepo.NewPlayerStatsRepository(statsRepo, store)
	}

	rules := scoring.Rules{
		MaxSubstitutions: cfg.MaxSubstitutions,
		GoalThreshold:    cfg.GoalThreshold,
		GoalGap:          cfg.GoalGap,
		HomeBonus:        cfg.HomeBonus,
	}

	teamSvc := usecase.NewTeamService(catalog, teamRepo, idgen.NewRandomGenerator())
	scoringSvc := usecase.NewScoringService(teamRepo, statsRepo, rules, logger)
	scoringSvc.SetMaxWorkers(cfg.GameweekWorkers)
	syncSvc := usecase.NewStatsSyncService(buildStatsProvider(cfg, logger), statsRepo, logger)

	handler := httpapi.NewHandler(teamSvc, scoringSvc, syncSvc, httpLogger)
	router := httpapi.NewRouter(handler, httpLogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, catalog formation.Catalog) (team.Repository, playerstats.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open database: %w", err)
		}
		return postgres.NewTeamRepository(db, catalog), postgres.NewPlayerStatsRepository(db), db.Close, nil
	default:
		teamRepo := memory.NewTeamRepository(memory.SeedTeams())
		statsRepo := memory.NewPlayerStatsRepository()
		for gameweek, sheet := range memory.SeedGameweekStats() {
			if err := statsRepo.UpsertGameweek(context.Background(), gameweek, sheet); err != nil {
				return nil, nil, nil, fmt.Errorf("seed gameweek %d stats: %w", gameweek, err)
			}
		}
		return teamRepo, statsRepo, noop, nil
	}
}

func buildStatsProvider(cfg config.Config, logger *logging.Logger) usecase.StatsProvider {
	if !cfg.KickestEnabled {
		return disabledStatsProvider{}
	}

	return kickest.NewClient(kickest.ClientConfig{
		BaseURL:    cfg.KickestBaseURL,
		Timeout:    cfg.KickestTimeout,
		MaxRetries: cfg.KickestMaxRetries,
		PageSize:   cfg.KickestPageSize,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.KickestCircuitEnabled,
			FailureThreshold: cfg.KickestCircuitFailureCount,
			OpenTimeout:      cfg.KickestCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.KickestCircuitHalfOpenMaxReq,
		},
	})
}

// disabledStatsProvider backs the sync endpoint when KICKEST_ENABLED is
// off, so operators get a 503 instead of a hung upstream call.
type disabledStatsProvider struct{}

func (disabledStatsProvider) FetchGameweek(context.Context, int) ([]playerstats.FixtureStat, error) {
	return nil, fmt.Errorf("%w: stats provider is disabled", usecase.ErrDependencyUnavailable)
}
