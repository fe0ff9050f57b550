package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

var (
	mirrorFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rui",
		Subsystem: "store",
		Name:      "remote_fallbacks_total",
		Help:      "Loads served from the local store because the remote snapshot was unusable.",
	}, []string{"collection"})

	mirrorRemoteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rui",
		Subsystem: "store",
		Name:      "remote_errors_total",
		Help:      "Failed remote snapshot operations.",
	}, []string{"operation"})
)

// Snapshot is the remote blob layout, one field per collection.
type Snapshot map[Collection]json.RawMessage

// MirroredStore prefers a remote snapshot for reads and keeps the local store
// as the source of truth for writes. Remote failures never fail an operation.
// A collection whose remote write failed is served from the local store until
// a later write or Sync brings the remote copy up to date.
type MirroredStore struct {
	local  Store
	remote Blob

	fetches singleflight.Group
	// writeMu orders local writes, local refreshes and remote puts.
	writeMu sync.Mutex

	mu     sync.Mutex
	behind map[Collection]bool
}

var _ Store = (*MirroredStore)(nil)

func NewMirroredStore(local Store, remote Blob) *MirroredStore {
	return &MirroredStore{local: local, remote: remote, behind: make(map[Collection]bool)}
}

// Behind reports whether the remote copy of c misses a local write.
func (m *MirroredStore) Behind(c Collection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.behind[c]
}

func (m *MirroredStore) setBehind(v bool, cs ...Collection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cs {
		if v {
			m.behind[c] = true
		} else {
			delete(m.behind, c)
		}
	}
}

func (m *MirroredStore) pending() []Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Collection, 0, len(m.behind))
	for c := range m.behind {
		out = append(out, c)
	}
	return out
}

func (m *MirroredStore) fetchSnapshot(ctx context.Context) (Snapshot, error) {
	v, err, _ := m.fetches.Do("snapshot", func() (any, error) {
		data, err := m.remote.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("remote snapshot is not valid json: %w", err)
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Snapshot), nil
}

func (m *MirroredStore) Load(ctx context.Context, c Collection) (Document, error) {
	// The local refresh below must not interleave with a Save of the same data.
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if m.Behind(c) {
		slog.Debug("Remote copy is behind, using local store",
			slog.String("type", "db"),
			slog.String("collection", string(c)))
		return m.local.Load(ctx, c)
	}

	snap, err := m.fetchSnapshot(ctx)
	if err == nil {
		if body, ok := snap[c]; ok && len(body) > 0 && string(body) != "null" {
			if err := m.local.Save(ctx, c, body); err != nil {
				slog.Warn("Failed to refresh local copy",
					slog.String("type", "db"),
					slog.String("collection", string(c)),
					slog.Any("error", err))
			}
			return Document(body), nil
		}
		err = fmt.Errorf("remote snapshot has no %s field", c)
	}

	if !errors.Is(err, ErrNotFound) {
		mirrorRemoteErrors.WithLabelValues("fetch").Inc()
	}
	mirrorFallbacks.WithLabelValues(string(c)).Inc()
	slog.Warn("Remote snapshot unavailable, using local store",
		slog.String("type", "db"),
		slog.String("collection", string(c)),
		slog.Any("error", err))
	return m.local.Load(ctx, c)
}

// Save writes the local store first. The remote copy is then updated by
// re-reading the snapshot and replacing only this collection's field.
func (m *MirroredStore) Save(ctx context.Context, c Collection, doc Document) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.local.Save(ctx, c, doc); err != nil {
		return err
	}

	snap, err := m.fetchSnapshot(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		snap = Snapshot{}
	case err != nil:
		// An unreadable snapshot is left alone rather than overwritten with a partial one.
		mirrorRemoteErrors.WithLabelValues("fetch").Inc()
		slog.Warn("Skipping remote write, snapshot unreadable",
			slog.String("type", "db"),
			slog.String("collection", string(c)),
			slog.Any("error", err))
		m.setBehind(true, c)
		return nil
	}

	next := make(Snapshot, len(snap)+1)
	for k, v := range snap {
		next[k] = v
	}
	// Collections left behind by earlier failures ride along from the local store.
	written := []Collection{c}
	for _, p := range m.pending() {
		if p == c {
			continue
		}
		body, err := m.local.Load(ctx, p)
		if err != nil {
			continue
		}
		next[p] = json.RawMessage(body)
		written = append(written, p)
	}
	next[c] = json.RawMessage(doc)

	if m.put(ctx, next) {
		m.setBehind(false, written...)
	} else {
		m.setBehind(true, c)
	}
	return nil
}

// Sync pushes every local collection to the remote snapshot. Remote fields
// with no local counterpart are kept.
func (m *MirroredStore) Sync(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	snap, err := m.fetchSnapshot(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		snap = Snapshot{}
	case err != nil:
		mirrorRemoteErrors.WithLabelValues("fetch").Inc()
		return fmt.Errorf("failed to read remote snapshot: %w", err)
	}

	next := make(Snapshot, len(Collections))
	for k, v := range snap {
		next[k] = v
	}
	var synced []Collection
	for _, c := range Collections {
		doc, err := m.local.Load(ctx, c)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read local %s: %w", c, err)
		}
		next[c] = json.RawMessage(doc)
		synced = append(synced, c)
	}
	if len(synced) == 0 {
		return nil
	}
	if !m.put(ctx, next) {
		return errors.New("remote snapshot upload failed")
	}
	m.setBehind(false, synced...)
	slog.Info("Remote snapshot synced",
		slog.String("type", "db"),
		slog.Int("collections", len(synced)))
	return nil
}

func (m *MirroredStore) put(ctx context.Context, snap Snapshot) bool {
	data, err := json.Marshal(snap)
	if err == nil {
		err = m.remote.Put(ctx, data)
	}
	if err != nil {
		mirrorRemoteErrors.WithLabelValues("put").Inc()
		slog.Warn("Remote snapshot write failed",
			slog.String("type", "db"),
			slog.Any("error", err))
		return false
	}
	return true
}

func (m *MirroredStore) Close(ctx context.Context) error {
	var errs []error
	if c, ok := m.remote.(Closer); ok {
		errs = append(errs, c.Close(ctx))
	}
	if c, ok := m.local.(Closer); ok {
		errs = append(errs, c.Close(ctx))
	}
	return errors.Join(errs...)
}
