package repository

import (
	"context"

	"aipirat/models"
	"aipirat/storage"

	"go.uber.org/zap"
)

// LanguageKey holds the raw language tag ("en" or "ru").
const LanguageKey = "zenith_lang"

// LanguageStore persists a visitor's display language. The store it is given is
// expected to be scoped to that visitor.
type LanguageStore struct {
	store *storage.Store
}

func NewLanguageStore(store *storage.Store) *LanguageStore {
	return &LanguageStore{store: store}
}

// Get returns the stored language, defaulting to Russian when absent or invalid.
func (s *LanguageStore) Get(ctx context.Context) models.Language {
	return models.ParseLanguage(s.store.GetOr(ctx, LanguageKey, string(models.DefaultLanguage)))
}

// Set stores lang best-effort. Invalid tags are normalized to the default.
func (s *LanguageStore) Set(ctx context.Context, lang models.Language) models.Language {
	lang = models.ParseLanguage(string(lang))
	s.store.SetBestEffort(ctx, LanguageKey, string(lang))
	return lang
}

// VisitorLanguages hands out language stores scoped to one visitor each.
type VisitorLanguages struct {
	backend storage.Backend
	log     *zap.Logger
}

func NewVisitorLanguages(backend storage.Backend, log *zap.Logger) *VisitorLanguages {
	return &VisitorLanguages{backend: backend, log: log}
}

func (v *VisitorLanguages) For(visitorID string) *LanguageStore {
	return NewLanguageStore(storage.NewStore(storage.Prefixed(v.backend, "visitor:"+visitorID+":"), v.log))
}
