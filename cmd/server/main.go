package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"anoa.com/kolabboard/internal/bootstrap"
	"anoa.com/kolabboard/internal/config"
	"anoa.com/kolabboard/internal/server"
	"anoa.com/kolabboard/pkg/database"
	"anoa.com/kolabboard/pkg/logger"
	"anoa.com/kolabboard/pkg/metrics"
	"anoa.com/kolabboard/pkg/storage"
	"anoa.com/kolabboard/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "kolabboard",
	Short:         "kolabboard is the API server for organization kanban boards",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(cfg *config.Config, db *gorm.DB, log *zap.Logger) error {
			if err := bootstrap.Migrate(db); err != nil {
				return err
			}
			log.Info("migration completed")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo student, faculty and workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(cfg *config.Config, db *gorm.DB, log *zap.Logger) error {
			if err := bootstrap.Migrate(db); err != nil {
				return err
			}
			return bootstrap.SeedDemo(db, log)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDB loads config, builds the logger and opens the database for the
// duration of fn.
func withDB(fn func(cfg *config.Config, db *gorm.DB, log *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.Database, cfg.IsDevelopment(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	return fn(cfg, db, log)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withDB(func(cfg *config.Config, db *gorm.DB, log *zap.Logger) error {
		if err := bootstrap.Migrate(db); err != nil {
			return err
		}
		if cfg.IsDevelopment() {
			if err := bootstrap.SeedDemo(db, log); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		redisClient := connectRedis(ctx, cfg.RedisURL, log)
		if redisClient != nil {
			defer redisClient.Close()
		}

		fileStorage, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		if fileStorage == nil {
			log.Info("file uploads disabled", zap.String("provider", cfg.Storage.Provider))
		}

		deps := server.Deps{
			DB:             db,
			Tokens:         token.NewService(cfg.JWTSecret, cfg.JWTTTL),
			Log:            log,
			Redis:          redisClient,
			Meili:          connectMeili(cfg.MeiliSearchHost, cfg.MeiliMasterKey, log),
			Storage:        fileStorage,
			AllowedOrigins: cfg.AllowedOrigins,
			DebugErrors:    cfg.IsDevelopment(),
		}
		if cfg.MetricsEnabled {
			deps.Metrics = metrics.New()
		}

		srv, err := server.NewServer(deps)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Run(":" + cfg.Port) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// connectRedis returns nil when Redis is not configured or unreachable;
// live notifications are then disabled.
func connectRedis(ctx context.Context, url string, log *zap.Logger) *redis.Client {
	if url == "" {
		log.Info("REDIS_URL not set, live notifications disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid REDIS_URL, live notifications disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, live notifications disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("redis connected", zap.String("addr", opts.Addr))
	return client
}

func connectMeili(host, key string, log *zap.Logger) meilisearch.ServiceManager {
	if host == "" {
		log.Info("MEILISEARCH_HOST not set, card search uses the database")
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}

	client := meilisearch.New(host, meilisearch.WithAPIKey(key))
	if !client.IsHealthy() {
		log.Warn("meilisearch unreachable, card search uses the database", zap.String("host", host))
		return nil
	}
	return client
}
