package cmd

import (
	"fmt"

	"scene-editor/core/assets"
	"scene-editor/core/config"
	"scene-editor/core/database"
	"scene-editor/core/logger"
	"scene-editor/core/storage"

	"scene-editor/feature/audio"
	"scene-editor/feature/scripts"
	"scene-editor/feature/textures"

	"go.uber.org/zap"
)

// assetStack bundles everything an offline asset command needs.
type assetStack struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       storage.Client
	registry    *assets.Registry
	coordinator *assets.Coordinator
}

// buildAssetStack loads configuration and mounts the asset categories for
// one-off CLI operations. The database is optional, matching the server.
func buildAssetStack() (*assetStack, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	registry := assets.NewRegistry()
	registry.Register(assets.Descriptor{
		Title:      textures.Title,
		Identifier: textures.Identifier,
		New: func() assets.Handler {
			return textures.New(store, cfg.Storage.Bucket, cfg.Assets, l)
		},
	})
	registry.Register(assets.Descriptor{
		Title:      audio.Title,
		Identifier: audio.Identifier,
		New: func() assets.Handler {
			return audio.New(store, cfg.Storage.Bucket, cfg.Assets, l)
		},
	})

	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed", zap.Error(err))
	} else if err := scripts.Migrate(db); err != nil {
		l.Warn("Failed to migrate script graphs", zap.Error(err))
	} else {
		registry.Register(assets.Descriptor{
			Title:      scripts.Title,
			Identifier: scripts.Identifier,
			New: func() assets.Handler {
				return scripts.New(db, l)
			},
		})
	}
	registry.MountAll()

	sink := assets.NewLogSink(l)
	return &assetStack{
		cfg:         cfg,
		logger:      l,
		store:       store,
		registry:    registry,
		coordinator: assets.NewCoordinator(registry, sink, l),
	}, nil
}
