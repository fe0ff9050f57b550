package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/database"
)

var (
	migrateFrom  string
	migrateTo    string
	migrateReset bool
)

// resetter is implemented by stores that can drop every collection at once.
type resetter interface {
	Reset(ctx context.Context) error
}

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "copy every collection from one store backend to another",
	Example: "  ruictl migrate --from file --to postgres\n" +
		"  ruictl migrate --from postgres --to mongo",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if migrateFrom == migrateTo {
			return errors.New("--from and --to must differ")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		src, err := openBackend(ctx, *cfg, rui.Backend(migrateFrom))
		if err != nil {
			return err
		}
		defer closeStore(ctx, src)

		dst, err := openBackend(ctx, *cfg, rui.Backend(migrateTo))
		if err != nil {
			return err
		}
		defer closeStore(ctx, dst)

		if migrateReset {
			r, ok := dst.(resetter)
			if !ok {
				return fmt.Errorf("--reset is not supported by the %s backend", migrateTo)
			}
			if err := r.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset %s: %w", migrateTo, err)
			}
		}

		copied, err := migrate(ctx, src, dst)
		if err != nil {
			slog.Error("Migration failed", slog.String("type", "db"), slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully",
			slog.String("type", "db"),
			slog.String("from", migrateFrom),
			slog.String("to", migrateTo),
			slog.Int("collections", copied))
		return nil
	},
}

func init() {
	migrateCMD.Flags().StringVar(&migrateFrom, "from", string(rui.BackendFile), "source backend (file, postgres, mongo)")
	migrateCMD.Flags().StringVar(&migrateTo, "to", string(rui.BackendPostgres), "target backend (file, postgres, mongo)")
	migrateCMD.Flags().BoolVar(&migrateReset, "reset", false, "empty the target before copying (postgres only)")
	rootCmd.AddCommand(migrateCMD)
}

func openBackend(ctx context.Context, cfg rui.Config, backend rui.Backend) (database.Store, error) {
	cfg.Store.Backend = backend
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return rui.OpenLocal(ctx, cfg)
}

func closeStore(ctx context.Context, s database.Store) {
	if c, ok := s.(database.Closer); ok {
		if err := c.Close(ctx); err != nil {
			slog.Warn("Failed to close store", slog.String("type", "db"), slog.Any("error", err))
		}
	}
}

// migrate copies all collections concurrently. Collections missing from src are skipped.
func migrate(ctx context.Context, src, dst database.Store) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	copied := make([]bool, len(database.Collections))

	for i, c := range database.Collections {
		g.Go(func() error {
			doc, err := src.Load(ctx, c)
			if errors.Is(err, database.ErrNotFound) {
				slog.Info("Collection missing in source, skipping",
					slog.String("type", "db"),
					slog.String("collection", string(c)))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", c, err)
			}
			if err := dst.Save(ctx, c, doc); err != nil {
				return fmt.Errorf("failed to write %s: %w", c, err)
			}
			copied[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for _, ok := range copied {
		if ok {
			n++
		}
	}
	return n, nil
}
