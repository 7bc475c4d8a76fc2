package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"symdiff/core/config"
	"symdiff/core/database"
	"symdiff/core/loader"
	"symdiff/core/logger"
	"symdiff/core/metrics"
	"symdiff/core/middleware/auth"
	"symdiff/core/middleware/rayid"
	"symdiff/core/source"
	"symdiff/core/storage"
	"symdiff/feature/diff"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "symdiff/docs/swagger"
)

// @title Symmetric Difference API
// @version 1.0
// @description API for comparing record collections by key properties.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the symdiff server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.IsValidPort() {
			logg.Fatal("Invalid server port", zap.String("port", cfg.Server.Port))
		}

		// The database only backs db:// sources, so the server runs without it.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("name", cfg.Database.Name))
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		checkBucket(logg, store, cfg.Storage.Bucket)

		src := source.NewLoader(source.Options{
			Client:     store,
			Bucket:     cfg.Storage.Bucket,
			DB:         db,
			Logger:     logg,
			CacheTTL:   time.Duration(cfg.Diff.CacheTTLSeconds) * time.Second,
			MaxRecords: cfg.Diff.MaxRecords,
		})
		defer src.Close()

		m := metrics.New()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(diff.NewFeature(src, m, logg))

		// RayID comes first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	},
}

// checkBucket warns when the default bucket is unreachable; s3:// sources naming
// another bucket can still work.
func checkBucket(logg *zap.Logger, store storage.Client, bucket string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := store.BucketExists(ctx, bucket)
	switch {
	case err != nil:
		logg.Warn("Storage is unreachable", zap.String("bucket", bucket), zap.Error(err))
	case !exists:
		logg.Warn("Default bucket does not exist", zap.String("bucket", bucket))
	default:
		logg.Info("Storage ready", zap.String("bucket", bucket))
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
