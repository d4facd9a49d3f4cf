package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Cache is the token persistence contract. The token manager depends only on
// this interface; backing stores (memory, file, SQL) are interchangeable.
type Cache interface {
	// Get returns the stored value for key, reporting ok=false when the key
	// is absent or its TTL has elapsed.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key. A ttl <= 0 means the value never expires
	// on its own.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

// RequestRecord is handed to the request observer after every API call.
// Debug-only: observers must never influence control flow.
type RequestRecord struct {
	Method         string
	Path           string
	RequestBody    any
	ResponseStatus int
	ResponseBody   any
}

type RequestObserver func(RequestRecord)
