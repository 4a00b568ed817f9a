// Package hero manages the site's hero backdrop: the current image and a bounded
// history of previously recorded images, newest first.
package hero

import (
	"context"
	"fmt"
	"sync"

	"aipirat/apperr"
	"aipirat/storage"

	"go.uber.org/zap"
)

const (
	CurrentKey = "pirate_hero_img_static"
	HistoryKey = "pirate_hero_history"

	// MaxHistory is the number of images kept in the history.
	MaxHistory = 12
)

// DefaultHero is shown while no hero has been stored.
const DefaultHero = "https://images.unsplash.com/photo-1514467958574-23b9c81b37ec?q=80&w=2070&auto=format&fit=crop"

// EvictFunc receives images that fell off the end of the history.
type EvictFunc func(ctx context.Context, images []string)

type Manager struct {
	store   *storage.Store
	log     *zap.Logger
	onEvict EvictFunc

	mu sync.Mutex
}

type Option func(*Manager)

// WithEvictHook registers fn to be called with images dropped from the history.
func WithEvictHook(fn EvictFunc) Option {
	return func(m *Manager) { m.onEvict = fn }
}

func NewManager(store *storage.Store, log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{store: store, log: log}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the stored hero, or DefaultHero.
func (m *Manager) Current(ctx context.Context) string {
	return m.store.GetOr(ctx, CurrentKey, DefaultHero)
}

// History returns the recorded images newest first. Absent, corrupt or
// unreadable history reads as empty.
func (m *Manager) History(ctx context.Context) []string {
	history, _ := m.loadHistory(ctx)
	return history
}

// Entry returns the history image at index.
func (m *Manager) Entry(ctx context.Context, index int) (string, error) {
	history := m.History(ctx)
	if index < 0 || index >= len(history) {
		return "", apperr.New(apperr.CodeNotFound, fmt.Sprintf("no history entry at index %d", index))
	}
	return history[index], nil
}

// SetAsHero replaces the current hero. The history is not touched.
func (m *Manager) SetAsHero(ctx context.Context, image string) error {
	if image == "" {
		return apperr.New(apperr.CodeInvalid, "image is required")
	}
	if err := m.store.Set(ctx, CurrentKey, image); err != nil {
		return apperr.Wrap(err, apperr.CodeUnavailable, "could not store hero image")
	}
	return nil
}

// ApplyFromHistory makes the history entry at index the current hero.
func (m *Manager) ApplyFromHistory(ctx context.Context, index int) (string, error) {
	image, err := m.Entry(ctx, index)
	if err != nil {
		return "", err
	}
	if err := m.SetAsHero(ctx, image); err != nil {
		return "", err
	}
	return image, nil
}

// RecordAndSetHero prepends image to the history, trims it to MaxHistory and
// makes image the current hero. Both writes happen under one lock, so the
// current hero always matches the newest history entry.
func (m *Manager) RecordAndSetHero(ctx context.Context, image string) error {
	if image == "" {
		return apperr.New(apperr.CodeInvalid, "image is required")
	}

	evicted, err := m.record(ctx, image)
	if len(evicted) > 0 {
		m.log.Debug("hero history trimmed", zap.Int("evicted", len(evicted)))
		if m.onEvict != nil {
			m.onEvict(ctx, evicted)
		}
	}
	return err
}

func (m *Manager) record(ctx context.Context, image string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history, err := m.loadHistory(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUnavailable, "could not read hero history")
	}
	history = append([]string{image}, history...)
	var evicted []string
	if len(history) > MaxHistory {
		evicted = append(evicted, history[MaxHistory:]...)
		history = history[:MaxHistory]
	}
	if err := m.store.SetJSON(ctx, HistoryKey, history); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUnavailable, "could not store hero history")
	}
	return evicted, m.SetAsHero(ctx, image)
}

// DeleteFromHistory removes exactly the entry at index. The current hero stays
// as it is even when it shows the deleted image.
func (m *Manager) DeleteFromHistory(ctx context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	history, err := m.loadHistory(ctx)
	if err != nil {
		return apperr.Wrap(err, apperr.CodeUnavailable, "could not read hero history")
	}
	if index < 0 || index >= len(history) {
		return apperr.New(apperr.CodeNotFound, fmt.Sprintf("no history entry at index %d", index))
	}

	history = append(history[:index:index], history[index+1:]...)
	if err := m.store.SetJSON(ctx, HistoryKey, history); err != nil {
		return apperr.Wrap(err, apperr.CodeUnavailable, "could not store hero history")
	}
	return nil
}

// loadHistory reports an error only when the store is unreachable.
func (m *Manager) loadHistory(ctx context.Context) ([]string, error) {
	var history []string
	res := m.store.GetJSON(ctx, HistoryKey, &history)
	switch res.Status {
	case storage.StatusOK:
		if history == nil {
			history = []string{}
		}
		return history, nil
	case storage.StatusCorrupt:
		m.log.Warn("hero history is malformed, treating as empty", zap.Error(res.Err))
		return []string{}, nil
	case storage.StatusUnavailable:
		m.log.Warn("hero history unavailable", zap.Error(res.Err))
		return []string{}, res.Err
	default:
		return []string{}, nil
	}
}
