package storage

import "context"

type prefixed struct {
	inner  Backend
	prefix string
}

// Prefixed scopes every key of inner under prefix, e.g. per-visitor values.
func Prefixed(inner Backend, prefix string) Backend {
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}
