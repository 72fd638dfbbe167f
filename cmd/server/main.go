package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskhub/taskhub/core"
	"github.com/taskhub/taskhub/modules/auth"
	"github.com/taskhub/taskhub/modules/task"
	"github.com/taskhub/taskhub/modules/user"
	"github.com/taskhub/taskhub/pkg/config"
	"github.com/taskhub/taskhub/pkg/httpserver"
	"github.com/taskhub/taskhub/pkg/logger"
	"github.com/taskhub/taskhub/pkg/pg"
	"github.com/taskhub/taskhub/pkg/ratelimiter"
	"github.com/taskhub/taskhub/pkg/redis"
	"github.com/taskhub/taskhub/pkg/requestid"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"` // Environment selects log format and cookie hardening.
	ServiceName string `env:"APP_NAME" envDefault:"taskhub"`
}

func (c appConfig) production() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName))
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var (
		authCfg    auth.Config
		serverCfg  httpserver.Config
		pgCfg      pg.Config
		redisCfg   redis.Config
		limiterCfg ratelimiter.Config
	)
	config.MustLoad(&authCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&limiterCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrateStart := time.Now()
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}
	log.Info("migrations applied", logger.Duration(time.Since(migrateStart)))

	tokens, err := auth.NewService(authCfg)
	if err != nil {
		return err
	}
	transport := auth.DefaultTransport(appCfg.production())
	errs := core.NewErrorHandler(log, !appCfg.production())
	guard := auth.Middleware(tokens, transport, errs)

	userSvc := user.NewService(user.NewPostgresStorage(pool), user.WithLogger(log.With(logger.Component("user"))))
	taskSvc := task.NewService(task.NewPostgresStorage(pool), task.WithLogger(log.With(logger.Component("task"))))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	if limiterCfg.Enabled {
		limit, err := rateLimiter(ctx, redisCfg, limiterCfg, log)
		if err != nil {
			return err
		}
		r.Use(limit)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		core.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Mount("/users", user.NewHandler(userSvc, tokens, transport, guard, errs).Handle())
	r.Mount("/tasks", task.NewHandler(taskSvc, guard, errs).Handle())
	r.NotFound(core.NotFoundHandler)
	r.MethodNotAllowed(core.MethodNotAllowedHandler)

	server := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return server.Run(ctx, r)
}

// rateLimiter builds the shared limiter middleware. The bucket state lives
// in redis when REDIS_URL is set so replicas share one budget; otherwise it
// is process-local.
func rateLimiter(ctx context.Context, redisCfg redis.Config, cfg ratelimiter.Config, log *slog.Logger) (func(http.Handler) http.Handler, error) {
	var store ratelimiter.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		store = ratelimiter.NewRedisStore(client, "taskhub:ratelimit")
		log.Info("rate limiter using redis store")
	} else {
		store = ratelimiter.NewMemoryStore()
		log.Info("rate limiter using in-memory store")
	}

	bucket, err := ratelimiter.NewBucket(store, cfg)
	if err != nil {
		return nil, err
	}
	return ratelimiter.Middleware(bucket, ratelimiter.KeyByIP), nil
}
