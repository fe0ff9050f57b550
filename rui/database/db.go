package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

// DB is the postgres backend. Every collection is one jsonb row in the documents table.
type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

var _ Store = (*DB)(nil)

type documentRow struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	Collection string    `bun:"collection,pk"`
	Body       []byte    `bun:"body,type:jsonb,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	var conn net.Conn
	var err error

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(defaultRetryInterval):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	db := &DB{pool: pool, bunDB: newBunDB(pool)}
	if err := db.Ping(ctx); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	return db, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(pool *pgxpool.Pool) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	cc := pool.Config().ConnConfig
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cc.User, cc.Password, cc.Host, cc.Port, cc.Database, sslMode)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// InitializeSchema creates the documents table when missing.
func (db *DB) InitializeSchema(ctx context.Context) error {
	_, err := db.bunDB.NewCreateTable().
		Model((*documentRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	slog.Info("Database schema ready", slog.String("type", "db"))
	return nil
}

func (db *DB) Load(ctx context.Context, c Collection) (Document, error) {
	start := time.Now()
	row := new(documentRow)
	err := db.bunDB.NewSelect().
		Model(row).
		Where("collection = ?", string(c)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", c, err)
	}

	slog.Debug("Collection loaded",
		slog.String("type", "db"),
		slog.String("operation", "load"),
		slog.String("collection", string(c)),
		slog.String("backend", "postgres"),
		slog.Duration("took", time.Since(start)))
	return Document(row.Body), nil
}

func (db *DB) Save(ctx context.Context, c Collection, doc Document) error {
	row := &documentRow{
		Collection: string(c),
		Body:       doc,
		UpdatedAt:  time.Now().UTC(),
	}
	_, err := db.bunDB.NewInsert().
		Model(row).
		On("CONFLICT (collection) DO UPDATE").
		Set("body = EXCLUDED.body").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", c, err)
	}
	return nil
}

func (db *DB) ExecWithLog(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", query),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Info("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", query),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

// Reset removes every stored collection.
func (db *DB) Reset(ctx context.Context) error {
	_, err := db.ExecWithLog(ctx, `TRUNCATE TABLE documents`)
	return err
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgxpool ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}

func (db *DB) Close(_ context.Context) error {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		return db.bunDB.Close()
	}
	return nil
}
