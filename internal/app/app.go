// Package app assembles the auth store and booking workflow from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/auth"
	"github.com/cx-tal-miterani/scenic-airways/internal/booking"
	"github.com/cx-tal-miterani/scenic-airways/internal/catalog"
	"github.com/cx-tal-miterani/scenic-airways/internal/config"
	"github.com/cx-tal-miterani/scenic-airways/internal/notify"
	"github.com/cx-tal-miterani/scenic-airways/internal/queue"
	"github.com/cx-tal-miterani/scenic-airways/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
)

// App owns the components built from one Config and the connections behind them
type App struct {
	Config   *config.Config
	KV       storage.Store
	Catalog  catalog.Source
	Auth     *auth.Store
	Workflow *booking.Workflow

	logger  *slog.Logger
	closers []func()
}

// New connects every configured backend. Close releases them.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, logger: logger}

	if err := a.build(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	cfg := a.Config

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		p, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, p.Close)
		pool = p
	}

	kv, err := a.openStorage(ctx, pool)
	if err != nil {
		return err
	}
	a.KV = kv

	src, err := a.openCatalog(ctx, pool)
	if err != nil {
		return err
	}
	a.Catalog = src

	dir, err := auth.NewMockDirectory(cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to build credential directory: %w", err)
	}
	a.Auth = auth.NewStore(kv, dir,
		auth.WithTokenIssuer(TokenIssuer(cfg)),
		auth.WithLogger(a.logger),
	)

	opts := []booking.Option{booking.WithLogger(a.logger)}
	n, err := a.openNotifier()
	if err != nil {
		return err
	}
	if n != nil {
		opts = append(opts, booking.WithNotifier(n))
	}
	a.Workflow = booking.NewWorkflow(src, a.Auth, opts...)
	return nil
}

// Close releases connections in reverse order of opening
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// OpenPostgres connects and pings the database
func OpenPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// NewRedisClient builds a client from config and checks it with a short ping
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}
	return c, nil
}

func (a *App) openStorage(ctx context.Context, pool *pgxpool.Pool) (storage.Store, error) {
	cfg := a.Config
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return storage.NewMemory(), nil
	case config.StorageRedis:
		c, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = c.Close() })
		return storage.NewRedis(c, cfg.RedisPrefix), nil
	case config.StoragePostgres:
		kv := storage.NewPostgres(pool)
		if err := kv.Migrate(ctx); err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return storage.NewFile(cfg.StoragePath, a.logger)
	}
}

func (a *App) openCatalog(ctx context.Context, pool *pgxpool.Pool) (catalog.Source, error) {
	if a.Config.CatalogBackend == config.CatalogPostgres {
		src := catalog.NewPostgres(pool)
		if err := src.Migrate(ctx); err != nil {
			return nil, err
		}
		if a.Config.CatalogSeed {
			if err := src.Seed(ctx, catalog.SampleFlights(), catalog.SampleBookings()); err != nil {
				return nil, err
			}
		}
		return src, nil
	}
	return catalog.NewSample()
}

// openNotifier returns nil when the workflow's logging notifier should be used
func (a *App) openNotifier() (booking.Notifier, error) {
	cfg := a.Config
	if cfg.TemporalEnabled {
		c, err := client.Dial(client.Options{
			HostPort: cfg.TemporalHost,
			Logger:   a.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Temporal: %w", err)
		}
		a.closers = append(a.closers, c.Close)
		a.logger.Info("Confirmations go through Temporal", "host", cfg.TemporalHost, "taskQueue", cfg.TemporalTaskQueue)
		return notify.NewTemporal(c, cfg.TemporalTaskQueue, a.logger), nil
	}
	if cfg.AMQPURL != "" {
		a.logger.Info("Confirmations published to RabbitMQ", "queue", queue.BookingConfirmedQueue)
		return notify.NewQueue(queue.NewPublisher(cfg.AMQPURL, a.logger)), nil
	}
	return nil, nil
}

// TokenIssuer picks the session token format
func TokenIssuer(cfg *config.Config) auth.TokenIssuer {
	if cfg.TokenMode == config.TokenJWT {
		return auth.JWTIssuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}
	}
	return auth.RandomIssuer{}
}
