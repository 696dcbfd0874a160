// Package bootstrap wires the configured storage driver and event bus for the
// api server and the importer.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"blog-cms/internal/logger"
	"blog-cms/config"
	"blog-cms/db"
	"blog-cms/eventbus"
	"blog-cms/repositories"
)

// CloseFunc releases whatever the opened resource holds.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// OpenPostRepository returns the repository for cfg.Driver. Relative paths are
// resolved against baseDir.
func OpenPostRepository(ctx context.Context, cfg config.StorageConfig, baseDir string) (repositories.PostRepository, CloseFunc, error) {
	switch cfg.Driver {
	case config.StorageDriverFile, "":
		return repositories.NewJSONFileRepository(ResolvePath(baseDir, cfg.DataFile)), noopClose, nil

	case config.StorageDriverMemory:
		return repositories.NewMemoryRepository(), noopClose, nil

	case config.StorageDriverBolt:
		repo, err := repositories.OpenBoltRepository(ResolvePath(baseDir, cfg.BoltPath))
		if err != nil {
			return nil, nil, err
		}
		return repo, func(context.Context) error { return repo.Close() }, nil

	case config.StorageDriverMongo:
		if err := db.Init(ctx, cfg.MongoURI, cfg.MongoDB); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
		return repositories.NewMongoRepository(db.Database(), db.CollectionPosts), db.Disconnect, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// OpenEventBus connects to Kafka when brokers are configured, otherwise events
// are dropped.
func OpenEventBus(ctx context.Context, cfg config.EventsConfig) (eventbus.EventBus, error) {
	if cfg.Brokers == "" {
		logger.Log.Info("kafka brokers not configured, post events are disabled")
		return eventbus.NopEventBus{}, nil
	}

	topicCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := eventbus.EnsureTopic(topicCtx, cfg.Brokers, cfg.Topic, 3); err != nil {
		logger.Log.Warnf("failed to ensure topic %s: %v", cfg.Topic, err)
	}

	bus, err := eventbus.NewKafkaEventBus(cfg.Brokers)
	if err != nil {
		return nil, err
	}
	return bus, nil
}

// ResolvePath joins a relative path onto baseDir.
func ResolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
