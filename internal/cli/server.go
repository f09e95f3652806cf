package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/infra/memory"
	redisstore "trivia-quiz-service/internal/infra/redis"
	"trivia-quiz-service/internal/logging"
	"trivia-quiz-service/internal/metrics"
	transport "trivia-quiz-service/internal/transport/http"
	"trivia-quiz-service/internal/trivia"
)

// NewStartCmd builds the CLI subcommand to start the quiz web server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File, cfg.Debug())
	if err != nil {
		return err
	}
	defer logger.Sync()

	var closers []func() error

	provider := trivia.NewClient(
		cfg.Trivia.BaseURL,
		config.TTLDuration(cfg.Trivia.Timeout, 10*time.Second),
		config.TTLDuration(cfg.Trivia.RateInterval, trivia.DefaultRateInterval),
	)
	categoryTTL := config.TTLDuration(cfg.Trivia.CategoryTTL, 24*time.Hour)
	sessionTTL := config.TTLDuration(cfg.Session.TTL, 2*time.Hour)

	var (
		sessions   app.SessionRepository
		categories app.CategoryRepository
	)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, redisClient.Close)
		sessions = redisstore.NewSessionStore(redisClient, sessionTTL)
		categories = redisstore.NewCategoryRepository(redisClient, provider, categoryTTL, logger.Named("categories"))
		logger.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = memory.NewSessionStore(sessionTTL)
		categories = memory.NewCategoryRepository(provider, categoryTTL)
	}

	metrics.Init()
	service := app.NewQuizService(provider, sessions, categories, logger.Named("quiz"))
	router := transport.NewRouter(&transport.Container{
		Quiz:       service,
		Logger:     logger.Named("http"),
		CookieName: cfg.Session.Cookie,
		Metrics:    metrics.Handler(),
	})

	finalPort := pickPort(portFlag, cfg.Server.Port, "8080")
	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return serve(ctx, server, logger, closers)
}

// serve runs server until SIGINT/SIGTERM or ctx cancellation, then shuts it down and runs
// closers. All shutdown errors are reported together.
func serve(ctx context.Context, server *http.Server, logger *zap.Logger, closers []func() error) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var result *multierror.Error
	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case err := <-serveErr:
		result = multierror.Append(result, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, err)
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
