// Package storage is the persistent key-value layer every other component writes
// through. Values are strings; structured values are JSON encoded under their key.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Backend is a raw key-value store. Implementations must be safe for concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Status classifies the outcome of a read.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusUnavailable
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusUnavailable:
		return "unavailable"
	case StatusCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

var (
	ErrNotFound    = errors.New("storage: key not found")
	ErrUnavailable = errors.New("storage: backend unavailable")
	ErrCorrupt     = errors.New("storage: stored value is malformed")
)

// Result is the outcome of a read. Err is nil only when Status is StatusOK.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func (r Result[T]) OK() bool { return r.Status == StatusOK }

// Store is the accessor used by repositories. Reads return explicit results so
// callers choose between falling back and propagating.
type Store struct {
	backend Backend
	log     *zap.Logger
}

func NewStore(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log}
}

// Backend exposes the underlying backend, e.g. to build a prefixed view of it.
func (s *Store) Backend() Backend { return s.backend }

func (s *Store) Get(ctx context.Context, key string) Result[string] {
	v, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return Result[string]{Status: StatusUnavailable, Err: fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)}
	}
	if !found {
		return Result[string]{Status: StatusNotFound, Err: fmt.Errorf("%w: %s", ErrNotFound, key)}
	}
	return Result[string]{Value: v, Status: StatusOK}
}

// GetOr is the best-effort read: any failure degrades to def.
func (s *Store) GetOr(ctx context.Context, key, def string) string {
	r := s.Get(ctx, key)
	switch r.Status {
	case StatusOK:
		return r.Value
	case StatusUnavailable:
		s.log.Warn("storage read failed, using default", zap.String("key", key), zap.Error(r.Err))
	}
	return def
}

// GetJSON decodes the value under key into dst.
func (s *Store) GetJSON(ctx context.Context, key string, dst any) Result[struct{}] {
	r := s.Get(ctx, key)
	if !r.OK() {
		return Result[struct{}]{Status: r.Status, Err: r.Err}
	}
	if err := json.Unmarshal([]byte(r.Value), dst); err != nil {
		return Result[struct{}]{Status: StatusCorrupt, Err: fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)}
	}
	return Result[struct{}]{Status: StatusOK}
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.backend.Set(ctx, key, value); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

// SetBestEffort writes value and only logs a failure.
func (s *Store) SetBestEffort(ctx context.Context, key, value string) {
	if err := s.Set(ctx, key, value); err != nil {
		s.log.Warn("storage write dropped", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, key, err)
	}
	return nil
}
