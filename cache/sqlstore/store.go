package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-lsbx/core"
)

type cacheEntryRecord struct {
	bun.BaseModel `bun:"table:lsbx_cache_entries,alias:ce"`

	Key       string     `bun:"key,pk"`
	Value     string     `bun:"value,notnull"`
	ExpiresAt *time.Time `bun:"expires_at,nullzero"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Store backs the token cache with a SQL table, letting multiple processes
// share one authenticated session. Expiry is lazy: expired rows read as
// misses and are deleted on the next access.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

func New(db *bun.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &Store{
		db: db,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

func NewFromPersistence(client *persistence.Client) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	}
	db := client.DB()
	if db == nil {
		return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
	}
	return New(db)
}

// Init creates the backing table when it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: store is not configured")
	}
	_, err := s.db.NewCreateTable().
		Model((*cacheEntryRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: create cache table: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, fmt.Errorf("sqlstore: store is not configured")
	}
	record := &cacheEntryRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.key = ?", key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlstore: get %s: %w", key, err)
	}
	if record.ExpiresAt != nil && !record.ExpiresAt.After(s.now()) {
		_ = s.Delete(ctx, key)
		return "", false, nil
	}
	return record.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: store is not configured")
	}
	record := &cacheEntryRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now(),
	}
	if ttl > 0 {
		expiresAt := s.now().Add(ttl)
		record.ExpiresAt = &expiresAt
	}
	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("expires_at = EXCLUDED.expires_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*cacheEntryRecord)(nil)).
		Where("?TableAlias.key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*cacheEntryRecord)(nil)).
		Where("1 = 1").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: clear: %w", err)
	}
	return nil
}

var _ core.Cache = (*Store)(nil)
