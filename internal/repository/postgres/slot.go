package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"xeghep/internal/repository"
)

const createSlotsTable = `
	CREATE TABLE IF NOT EXISTS collection_slots (
		key        TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

const upsertSlot = `
	INSERT INTO collection_slots (key, payload, updated_at)
	VALUES ($1, $2::jsonb, now())
	ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
`

// SlotStore is a PostgreSQL implementation of repository.SlotStore.
// Each collection is one row of the collection_slots table.
type SlotStore struct {
	db *sql.DB
	q  Querier
}

// NewSlotStore creates a new PostgreSQL slot store.
func NewSlotStore(db *sql.DB) *SlotStore {
	return &SlotStore{db: db, q: db}
}

// NewSlotStoreWithTx creates a slot store bound to a transaction.
func NewSlotStoreWithTx(tx *sql.Tx) *SlotStore {
	return &SlotStore{q: tx}
}

var _ repository.SlotStore = (*SlotStore)(nil)

// EnsureSchema creates the slots table if it does not exist.
func (s *SlotStore) EnsureSchema(ctx context.Context) error {
	_, err := s.q.ExecContext(ctx, createSlotsTable)
	return err
}

// Load retrieves the payload stored under key.
func (s *SlotStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload FROM collection_slots WHERE key = $1`

	var payload []byte
	err := s.q.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

// Save upserts the payload for key.
func (s *SlotStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.q.ExecContext(ctx, upsertSlot, key, string(data))
	return err
}

// SaveAll upserts every slot in one transaction. Keys are written in
// sorted order so concurrent writers lock rows consistently.
func (s *SlotStore) SaveAll(ctx context.Context, slots map[string][]byte) error {
	if s.db == nil {
		return s.saveEach(ctx, slots)
	}
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return NewSlotStoreWithTx(tx).saveEach(ctx, slots)
	})
}

func (s *SlotStore) saveEach(ctx context.Context, slots map[string][]byte) error {
	keys := make([]string, 0, len(slots))
	for key := range slots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.Save(ctx, key, slots[key]); err != nil {
			return err
		}
	}
	return nil
}
