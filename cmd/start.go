package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scene-editor/core/assets"
	"scene-editor/core/config"
	"scene-editor/core/database"
	"scene-editor/core/loader"
	"scene-editor/core/logger"
	"scene-editor/core/middleware/auth"
	"scene-editor/core/middleware/rayid"
	"scene-editor/core/storage"

	"scene-editor/feature/audio"
	"scene-editor/feature/browser"
	"scene-editor/feature/scripts"
	"scene-editor/feature/textures"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "scene-editor/docs/swagger"
)

// @title Scene Editor Asset API
// @version 1.0
// @description API for the scene editor's asset subsystem.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset service",
	Long:  `Starts the HTTP server, mounts the asset categories and runs an initial refresh.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the project database (optional; scripts category
		// is simply unavailable without it)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to project database")
		}

		// 4. Initialize Storage and ensure the asset bucket exists
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		ensureBucket(store, cfg.Storage.Bucket, logg)

		// 5. Build the asset subsystem: registry, handlers, coordinator
		registry := assets.NewRegistry()
		registry.Register(assets.Descriptor{
			Title:      textures.Title,
			Identifier: textures.Identifier,
			New: func() assets.Handler {
				return textures.New(store, cfg.Storage.Bucket, cfg.Assets, logg)
			},
		})
		registry.Register(assets.Descriptor{
			Title:      audio.Title,
			Identifier: audio.Identifier,
			New: func() assets.Handler {
				return audio.New(store, cfg.Storage.Bucket, cfg.Assets, logg)
			},
		})
		if db != nil {
			if err := scripts.Migrate(db); err != nil {
				logg.Fatal("Failed to migrate script graphs", zap.Error(err))
			}
			registry.Register(assets.Descriptor{
				Title:      scripts.Title,
				Identifier: scripts.Identifier,
				New: func() assets.Handler {
					return scripts.New(db, logg)
				},
			})
		}
		registry.MountAll()

		sink := assets.NewLogSink(logg)
		coordinator := assets.NewCoordinator(registry, sink, logg)

		svc := browser.NewService(registry, coordinator, store, cfg.Storage.Bucket,
			sink, assets.AutoConfirm{}, cfg.Assets, logg)

		// The inspector panel lives in the editor frontend; until its
		// push channel lands, the hook just records that a re-render
		// would have been requested.
		svc.SetInspectorRefresh(func() {
			logg.Debug("Inspector refresh requested")
		})

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			BodyLimit:             64 * 1024 * 1024,
		})

		// Middleware: RayID first so everything is traceable
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		mgr := loader.NewManager()
		mgr.Register(browser.NewFeature(svc))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Initial refresh in the background so the browser has items
		// as soon as the frontend connects
		go coordinator.RefreshAll(context.Background(), assets.RefreshOptions{})

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// ensureBucket creates the asset bucket on first start.
func ensureBucket(store storage.Client, bucket string, logg *zap.Logger) {
	ctx := context.Background()
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		logg.Warn("Failed to check asset bucket", zap.Error(err))
		return
	}
	if exists {
		return
	}
	if err := store.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logg.Warn("Failed to create asset bucket", zap.Error(err))
		return
	}
	logg.Info("Asset bucket created", zap.String("bucket", bucket))
}

func init() {
	RootCmd.AddCommand(startCmd)
}
