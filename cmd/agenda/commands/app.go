package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"eventagenda/config"
	"eventagenda/internal/adapters/auth"
	"eventagenda/internal/adapters/calendar"
	"eventagenda/internal/adapters/sessionize"
	deliveryhttp "eventagenda/internal/delivery/http"
	"eventagenda/internal/delivery/http/controllers"
	"eventagenda/internal/delivery/http/middleware"
	"eventagenda/internal/domain"
	"eventagenda/internal/realtime"
	"eventagenda/internal/repository/postgres"
	redisrepo "eventagenda/internal/repository/redis"
	"eventagenda/internal/services"
)

// devJWTSecret signs tokens when JWT_SECRET is unset outside production.
const devJWTSecret = "eventagenda-dev-secret"

// app holds the wired services shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	rdb    goredis.UniversalClient

	hub      *realtime.Hub
	bus      *realtime.RedisBus
	notifier domain.ChangeNotifier
	issuer   domain.TokenIssuer
	verify   domain.TokenVerifier

	events     domain.EventService
	agenda     domain.AgendaService
	live       domain.LiveItemService
	selections domain.SelectionService
	gate       domain.AdminGate
}

// openApp loads configuration, connects to Postgres (and Redis when
// configured) and wires the services.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	var rdb goredis.UniversalClient
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb = goredis.NewClient(opts)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			db.Close()
			rdb.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
	}

	return buildApp(cfg, logger, db, rdb), nil
}

// buildApp wires repositories, services and the realtime hub. Without Redis
// the hub is notified directly; with Redis every change goes through the bus
// so all instances refresh their subscribers, falling back to the local hub
// when a publish fails.
func buildApp(cfg *config.Config, logger *slog.Logger, db *sql.DB, rdb goredis.UniversalClient) *app {
	a := &app{cfg: cfg, logger: logger, db: db, rdb: rdb}

	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("JWT_SECRET not set, using development secret")
		secret = devJWTSecret
	}
	a.issuer = auth.NewJWTIssuer(secret)
	a.verify = auth.NewJWTVerifier(secret)

	selectionRepo := postgres.NewSelectionRepository(db)
	if cfg.SelectionStore == config.StoreRedis && rdb != nil {
		selectionRepo = redisrepo.NewSelectionRepository(rdb)
	}

	// The hub loads snapshots through the agenda service, which in turn
	// notifies the hub; the forwarder breaks the construction cycle.
	var notifier domain.ChangeNotifier = domain.NotifierFunc(func(ctx context.Context, c domain.ChangeEvent) error {
		return a.hub.Notify(ctx, c)
	})
	if rdb != nil {
		a.bus = realtime.NewRedisBus(rdb, logger)
		notifier = a.bus.WithLocalFallback(notifier)
	}

	a.notifier = notifier

	retry := services.DefaultRetryPolicy()
	retry.Attempts = cfg.RetryAttempts
	deps := services.Deps{
		Events:     postgres.NewEventRepository(db),
		Items:      postgres.NewAgendaItemRepository(db),
		Selections: selectionRepo,
		Notifier:   notifier,
		Logger:     logger,
		Retry:      retry,
		Timeout:    cfg.ContextTimeout,
	}
	a.events = services.NewEventService(deps)
	a.agenda = services.NewAgendaService(deps)
	a.live = services.NewLiveItemService(deps)
	a.selections = services.NewSelectionService(deps)
	a.hub = realtime.NewHub(a.agenda, logger, cfg.ContextTimeout)

	fetcher := sessionize.NewHTTPFetcher(&http.Client{Timeout: 15 * time.Second}, cfg.SessionizeURL)
	imports := services.NewImportService(a.agenda, fetcher, 2*cfg.ContextTimeout)
	a.gate = services.NewAdminGate(a.events, a.agenda, a.live, imports)
	return a
}

// handler builds the full HTTP handler: router, auth, CORS and request logging.
func (a *app) handler() http.Handler {
	c := deliveryhttp.Controllers{
		Events:    controllers.NewEventController(a.logger, a.gate, a.events),
		Agenda:    controllers.NewAgendaController(a.logger, a.gate, a.agenda, a.events, calendar.NewExporter("", "")),
		Live:      controllers.NewLiveItemController(a.logger, a.gate, a.live),
		Selection: controllers.NewSelectionController(a.logger, a.selections),
		Import:    controllers.NewImportController(a.logger, a.gate),
		Stream:    controllers.NewStreamController(a.logger, a.hub, a.cfg.AllowedOrigins),
	}
	mux := deliveryhttp.NewRouter(c, middleware.RequireAuth(a.verify, a.logger))
	return middleware.LoggingMiddleware(a.logger, middleware.CORS(a.cfg.AllowedOrigins, mux))
}

func (a *app) Close() {
	a.hub.Close()
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("failed to close redis client", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}
