package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/soltree-games/scorekeeper/internal/api/dashboard"
	"github.com/soltree-games/scorekeeper/internal/config"
	"github.com/soltree-games/scorekeeper/internal/engine/catalog"
	"github.com/soltree-games/scorekeeper/internal/engine/pipeline"
	"github.com/soltree-games/scorekeeper/internal/notify"
	"github.com/soltree-games/scorekeeper/internal/platform"
	"github.com/soltree-games/scorekeeper/internal/repository"
	"github.com/soltree-games/scorekeeper/internal/service/leaderboard"
	"github.com/soltree-games/scorekeeper/internal/service/scheduler"
	"github.com/soltree-games/scorekeeper/internal/store"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// pipelineRunner adapts the pipeline to the scheduler's job interface and
// posts a run summary after each successful pass. Notification failures are
// logged but never fail the run.
type pipelineRunner struct {
	pipeline *pipeline.Pipeline
	notifier *notify.Client
	log      *logger.Logger
}

func (r pipelineRunner) Run(ctx context.Context) error {
	snapshot, err := r.pipeline.Run(ctx)
	if err != nil {
		return err
	}
	if err := r.notifier.SendRunSummary(snapshot); err != nil {
		r.log.Error().Err(err).Msg("Failed to send run summary")
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	runOnce := flag.Bool("once", false, "run one scoring pass and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.Get()

	log.Info().
		Str("guild_id", cfg.Platform.GuildID).
		Bool("once", *runOnce).
		Msg("Starting scorekeeper")

	// Platform client, optionally wrapped in the Redis history cache.
	client := platform.NewClient(&cfg.Platform, log)
	var history platform.HistorySource = client
	if cfg.Cache.Enabled {
		cache, err := platform.NewRedisCache(&cfg.Cache.Redis)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to Redis, history cache disabled")
		} else {
			defer cache.Close()
			ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
			history = platform.NewCachedHistory(client, cache, ttl, log)
		}
	}

	// Quest and bounty catalogs.
	cat := catalog.New(log)
	loader := store.NewCatalogLoader(log)
	if _, err := loader.LoadQuests(cfg.Catalog.QuestsPath, cat); err != nil {
		log.Error().Err(err).Str("path", cfg.Catalog.QuestsPath).Msg("Quest catalog unavailable")
	}
	if _, err := loader.LoadBounties(cfg.Catalog.BountiesPath, cat); err != nil {
		log.Error().Err(err).Str("path", cfg.Catalog.BountiesPath).Msg("Bounty catalog unavailable")
	}

	snapshotWriter := store.NewFileSnapshotWriter(cfg.Snapshot.Path, log)

	// Optional relational archive.
	var (
		db       *repository.DB
		archiver pipeline.Archiver
	)
	if cfg.Archive.Enabled {
		db, err = repository.NewDB(&cfg.Archive, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to score archive")
		}
		defer db.Close()

		if err := db.AutoMigrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate score archive")
		}

		archiver = repository.NewArchiver(
			repository.NewPlayerRepository(db),
			repository.NewScoreRepository(db),
			log,
		)
	}

	pipe := pipeline.New(
		history,
		client,
		cat,
		cfg.Game,
		cfg.Platform.AdminID,
		snapshotWriter,
		archiver,
		log,
	)

	runner := pipelineRunner{
		pipeline: pipe,
		notifier: notify.NewClient(&cfg.Notify, log),
		log:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *runOnce {
		if err := runner.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("Scoring run failed")
		}
		return
	}

	// Initial run on startup, then daily via the scheduler.
	if err := runner.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Initial scoring run failed")
	}

	sched := scheduler.NewService(&cfg.Scheduler, runner, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer sched.Stop()

	var server *http.Server
	if cfg.Dashboard.Enabled {
		if db == nil {
			log.Warn().Msg("Dashboard enabled without archive, leaderboard endpoints will be empty")
		}
		server = startDashboard(cfg, db, log)
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Dashboard shutdown failed")
		}
	}
}

// startDashboard wires the HTTP API and serves it in the background.
func startDashboard(cfg *config.Config, db *repository.DB, log *logger.Logger) *http.Server {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	var handler *dashboard.Handler
	if db != nil {
		service := leaderboard.NewService(
			repository.NewPlayerRepository(db),
			repository.NewScoreRepository(db),
			log,
		)
		handler = dashboard.NewHandler(service, db, log)
	} else {
		handler = dashboard.NewHandlerWithInterfaces(nil, nil, log)
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	handler.RegisterRoutes(router, metricsPath)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Dashboard.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Dashboard.Port).Msg("Dashboard listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Dashboard server failed")
		}
	}()

	return server
}
