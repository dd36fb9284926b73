// Package store persists the whole engagement state as a single versioned
// JSON document in Postgres. The document is small (one agency, a handful of
// rounds) so a blob-per-key table beats a relational breakdown here.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"agency-live/internal/engine"
)

// SnapshotKey is the stable document key. Changing it orphans saved state.
const SnapshotKey = "aglge_mvp_v1"

// Store wraps DB access.
type Store struct {
	Pool *pgxpool.Pool
}

func New(dsn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// EnsureSchema creates the snapshots table if it is missing. Safe to call on
// every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			key        text PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	return err
}

// Load reads the snapshot document. A missing or unreadable document is
// replaced with freshly seeded state, which is saved before returning so the
// next writer starts from the same baseline.
func (s *Store) Load(ctx context.Context) (*engine.Snapshot, error) {
	var doc []byte
	err := s.Pool.QueryRow(ctx, `SELECT doc FROM snapshots WHERE key = $1`, SnapshotKey).Scan(&doc)
	switch {
	case err == pgx.ErrNoRows:
		return s.reseed(ctx)
	case err != nil:
		return nil, err
	}

	var snap engine.Snapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		log.Warn().Err(err).Str("key", SnapshotKey).Msg("snapshot document corrupt, reseeding")
		return s.reseed(ctx)
	}
	return &snap, nil
}

// Save upserts the snapshot document.
func (s *Store) Save(ctx context.Context, snap *engine.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO snapshots (key, doc, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		SnapshotKey, doc)
	return err
}

func (s *Store) reseed(ctx context.Context) (*engine.Snapshot, error) {
	snap := engine.NewSeedSnapshot(time.Now().UTC())
	if err := s.Save(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
