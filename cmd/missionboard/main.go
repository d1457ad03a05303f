package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"golang.org/x/sync/errgroup"

	"github.com/gangbro/missionboard/internal/bus"
	"github.com/gangbro/missionboard/internal/chat"
	"github.com/gangbro/missionboard/internal/config"
	"github.com/gangbro/missionboard/internal/crew"
	"github.com/gangbro/missionboard/internal/database"
	"github.com/gangbro/missionboard/internal/missions"
	"github.com/gangbro/missionboard/internal/report"
	"github.com/gangbro/missionboard/internal/repository"
	"github.com/gangbro/missionboard/internal/stats"
	"github.com/gangbro/missionboard/internal/viewing"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	logger *slog.Logger
	config *config.AppConfig
	policy *config.CrewPolicy

	dbm      *database.DatabaseManager
	brawlers *repository.BrawlerDbRepository

	events   *bus.Bus
	chat     *chat.Service
	crew     *crew.Coordinator
	missions *missions.Coordinator
	views    *viewing.Service
	stats    *stats.Service
}

func NewApp(cfg *config.AppConfig, policy *config.CrewPolicy) (*App, error) {
	db, err := database.GetDatabase(cfg.DSN(), cfg.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	dbm := database.New(db)

	if err := dbm.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	app := &App{
		logger:   slog.Default().With("logger", "app"),
		config:   cfg,
		policy:   policy,
		dbm:      dbm,
		brawlers: repository.NewBrawlerDbRepository(cfg.BrawlersFile(), dbm),
		events:   bus.New("notifications", cfg.BusBuffer()),
	}

	views := repository.NewViewDbRepository(dbm)
	tx := repository.NewDbTransactor(dbm)

	app.views = viewing.NewService(views)
	app.stats = stats.NewService(views, cfg.StatsTTL())
	app.chat = chat.NewService(repository.NewChatDbRepository(dbm), app.views, app.brawlers, chat.NewHub(cfg.ChatBuffer()))
	app.crew = crew.NewCoordinator(tx, app, policy)
	app.missions = missions.NewCoordinator(tx, app, app.chat, app.crew, policy)

	return app, nil
}

// Publish fans a domain event out to the notification feed. Any change to
// missions or crews makes the cached board statistics stale.
func (app *App) Publish(e bus.Event) int {
	app.stats.Invalidate()

	return app.events.Publish(e)
}

func (app *App) Run(ctx context.Context) error {
	if err := app.brawlers.Start(); err != nil {
		return fmt.Errorf("load brawlers: %w", err)
	}

	srv, err := NewHttp(app)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("listening " + app.config.ApiAddr())

		return srv.Listen(app.config.ApiAddr())
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info("exiting...")

		return srv.Shutdown(time.Second * 5)
	})

	return g.Wait()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func main() {
	fmt.Printf("missionboard %s:%s\n", gitBranch, gitRevision)

	var conf = pflag.String("config", "missionboard.yml", "name of config file")
	var debug = pflag.Bool("debug", false, "debug")
	pflag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		panic(err)
	}

	defer logger.Sync()

	slog.SetDefault(slog.New(zapslog.NewHandler(logger.Core(), zapslog.WithCaller(*debug))))

	config.LoadDotEnv(".env")

	cfg := config.NewAppConfig()
	cfg.Load(*conf)

	if err := cfg.LoadEnv(config.EnvPrefix); err != nil {
		slog.Error("can't read env", slog.Any("error", err))
		os.Exit(1)
	}

	_ = cfg.Set("debug", *debug)

	policy, err := config.LoadCrewPolicy()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if err := report.Init(cfg.SentryDSN(), cfg.Environment(), gitRevision); err != nil {
		slog.Warn("sentry is disabled", slog.Any("error", err))
	}

	defer report.Flush()

	app, err := NewApp(cfg, policy)
	if err != nil {
		slog.Error("can't start", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
