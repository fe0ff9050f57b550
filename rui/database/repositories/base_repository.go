package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xlovstudio/rui/rui/config"
	"github.com/xlovstudio/rui/rui/database"
)

// errSkipSave ends a mutate cycle without writing.
var errSkipSave = errors.New("nothing to save")

// BaseRepository serializes read-modify-write cycles on one collection document.
type BaseRepository struct {
	store          database.Store
	collection     database.Collection
	defaultTimeout time.Duration

	mu sync.Mutex
}

func NewBaseRepository(store database.Store, c database.Collection) *BaseRepository {
	return &BaseRepository{
		store:          store,
		collection:     c,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// ConflictError represents a data conflict error
type ConflictError struct {
	Entity string
	Field  string
	Value  any
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %v already exists", ce.Entity, ce.Field, ce.Value)
}

func (r *BaseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.defaultTimeout)
}

// load decodes the collection into v. A collection that was never saved leaves v untouched.
func (r *BaseRepository) load(ctx context.Context, v any) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc, err := r.store.Load(ctx, r.collection)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err == nil && bytes.Equal(bytes.TrimSpace(doc), []byte("null")) {
		return nil
	}
	if err != nil {
		return &RepositoryError{Operation: "load", Entity: string(r.collection), Err: err}
	}
	if err := json.Unmarshal(doc, v); err != nil {
		slog.Error("Stored collection is corrupt",
			slog.String("type", "db"),
			slog.String("collection", string(r.collection)),
			slog.Any("error", err))
		return &RepositoryError{Operation: "decode", Entity: string(r.collection), Err: err}
	}
	return nil
}

func (r *BaseRepository) save(ctx context.Context, v any) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc, err := json.Marshal(v)
	if err != nil {
		return &RepositoryError{Operation: "encode", Entity: string(r.collection), Err: err}
	}
	if err := r.store.Save(ctx, r.collection, doc); err != nil {
		return &RepositoryError{Operation: "save", Entity: string(r.collection), Err: err}
	}
	return nil
}

// mutate reloads the document, applies fn and saves the result. Nothing is
// written when fn fails.
func (r *BaseRepository) mutate(ctx context.Context, v any, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx, v); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return r.save(ctx, v)
}

// read loads the document under the collection lock.
func (r *BaseRepository) read(ctx context.Context, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, v)
}
