package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goliatone/go-lsbx/core"
)

type fileEnvelope struct {
	Value     string     `json:"value"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// File persists one file per key under a directory, so cached tokens survive
// process restarts. Writes go through a temp file plus rename; concurrent
// writers in separate processes racing on the same key get last-write-wins,
// which is acceptable for idempotent token storage.
type File struct {
	dir string
	now func() time.Time
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "lsbx_cache")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, core.NewConfigurationError(fmt.Sprintf("cache directory is not writable: %s", dir))
	}
	return &File{
		dir: dir,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	content, err := os.ReadFile(f.filename(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: read %s: %w", key, err)
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(content, &envelope); err != nil {
		return "", false, nil
	}
	if envelope.ExpiresAt != nil && !envelope.ExpiresAt.After(f.now()) {
		_ = f.Delete(ctx, key)
		return "", false, nil
	}
	return envelope.Value, true, nil
}

func (f *File) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	envelope := fileEnvelope{Value: value}
	if ttl > 0 {
		expiresAt := f.now().Add(ttl)
		envelope.ExpiresAt = &expiresAt
	}
	content, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}

	filename := f.filename(key)
	tmp, err := os.CreateTemp(f.dir, ".lsbx-*")
	if err != nil {
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.filename(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}
	return nil
}

func (f *File) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := f.Get(ctx, key)
	return ok, err
}

func (f *File) Clear(_ context.Context) error {
	entries, err := filepath.Glob(filepath.Join(f.dir, "*.cache"))
	if err != nil {
		return fmt.Errorf("cache: clear: %w", err)
	}
	for _, entry := range entries {
		if err := os.Remove(entry); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cache: clear: %w", err)
		}
	}
	return nil
}

func (f *File) filename(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".cache")
}

var _ core.Cache = (*File)(nil)
