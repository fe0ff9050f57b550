package rui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xlovstudio/rui/rui/database"
)

// OpenLocal connects the primary store selected by cfg.Store.Backend.
func OpenLocal(ctx context.Context, cfg Config) (database.Store, error) {
	start := time.Now()
	var (
		store database.Store
		err   error
	)
	switch cfg.Store.Backend {
	case BackendPostgres:
		var db *database.DB
		db, err = database.New(ctx, cfg.DB)
		if err == nil {
			if err = db.InitializeSchema(ctx); err != nil {
				_ = db.Close(ctx)
			}
		}
		store = db
	case BackendMongo:
		store, err = database.NewMongoStore(ctx, cfg.Mongo)
	default:
		store, err = database.NewFileStore(cfg.Store.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}

	slog.Info("Store opened",
		slog.String("type", "db"),
		slog.String("backend", string(cfg.Store.Backend)),
		slog.Duration("took", time.Since(start)))
	return store, nil
}

// OpenRemote connects the snapshot mirror. It returns nil when none is configured.
func OpenRemote(ctx context.Context, cfg RemoteConfig) (database.Blob, error) {
	switch cfg.Kind {
	case RemoteS3:
		blob, err := database.NewS3Blob(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return blob, nil
	case RemoteRedis:
		blob, err := database.NewRedisBlob(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return blob, nil
	}
	return nil, nil
}

// OpenStore opens the local store and wraps it in the remote mirror when one
// is configured. The mirror is nil otherwise.
func OpenStore(ctx context.Context, cfg Config) (database.Store, *database.MirroredStore, error) {
	local, err := OpenLocal(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	remote, err := OpenRemote(ctx, cfg.Remote)
	if err != nil {
		if closer, ok := local.(database.Closer); ok {
			_ = closer.Close(ctx)
		}
		return nil, nil, fmt.Errorf("failed to open %s mirror: %w", cfg.Remote.Kind, err)
	}
	if remote == nil {
		return local, nil, nil
	}

	slog.Info("Remote mirror enabled",
		slog.String("type", "db"),
		slog.String("kind", string(cfg.Remote.Kind)))
	mirror := database.NewMirroredStore(local, remote)
	return mirror, mirror, nil
}
