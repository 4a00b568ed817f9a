package hero

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"aipirat/apperr"
	"aipirat/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, opts ...Option) (*Manager, storage.Backend) {
	t.Helper()
	backend := storage.NewMemory()
	return NewManager(storage.NewStore(backend, nil), nil, opts...), backend
}

func TestCurrentDefaultsToBackdrop(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, DefaultHero, m.Current(context.Background()))
	assert.Empty(t, m.History(context.Background()))
}

func TestRecordAndSetHero(t *testing.T) {
	ctx := context.Background()
	m, backend := newTestManager(t)

	require.NoError(t, m.RecordAndSetHero(ctx, "img-a"))
	require.NoError(t, m.RecordAndSetHero(ctx, "img-b"))

	assert.Equal(t, "img-b", m.Current(ctx))
	assert.Equal(t, []string{"img-b", "img-a"}, m.History(ctx))

	raw, _, err := backend.Get(ctx, CurrentKey)
	require.NoError(t, err)
	assert.Equal(t, "img-b", raw, "current hero is stored raw")

	raw, _, err = backend.Get(ctx, HistoryKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["img-b","img-a"]`, raw)
}

func TestConcurrentRecordsKeepHeroInStepWithHistory(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, m.RecordAndSetHero(ctx, fmt.Sprintf("img-%d", i)))
		}(i)
	}
	wg.Wait()

	history := m.History(ctx)
	require.Len(t, history, MaxHistory)
	assert.Equal(t, history[0], m.Current(ctx))
}

func TestHistoryIsCappedAndEvicts(t *testing.T) {
	ctx := context.Background()
	var evicted []string
	m, _ := newTestManager(t, WithEvictHook(func(_ context.Context, images []string) {
		evicted = append(evicted, images...)
	}))

	for i := 1; i <= MaxHistory+1; i++ {
		require.NoError(t, m.RecordAndSetHero(ctx, fmt.Sprintf("img-%d", i)))
	}

	history := m.History(ctx)
	require.Len(t, history, MaxHistory)
	assert.Equal(t, "img-13", history[0])
	assert.Equal(t, "img-2", history[MaxHistory-1])
	assert.NotContains(t, history, "img-1")
	assert.Equal(t, []string{"img-1"}, evicted)
}

func TestSetAsHeroLeavesHistory(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.RecordAndSetHero(ctx, "img-a"))

	require.NoError(t, m.SetAsHero(ctx, "https://example.com/x.png"))
	assert.Equal(t, "https://example.com/x.png", m.Current(ctx))
	assert.Equal(t, []string{"img-a"}, m.History(ctx))

	assert.True(t, apperr.IsCode(m.SetAsHero(ctx, ""), apperr.CodeInvalid))
}

func TestApplyFromHistory(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.RecordAndSetHero(ctx, "img-a"))
	require.NoError(t, m.RecordAndSetHero(ctx, "img-b"))

	img, err := m.ApplyFromHistory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "img-a", img)
	assert.Equal(t, "img-a", m.Current(ctx))
	assert.Equal(t, []string{"img-b", "img-a"}, m.History(ctx), "applying does not reorder")

	_, err = m.ApplyFromHistory(ctx, 5)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteFromHistory(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	for _, img := range []string{"a", "b", "c"} {
		require.NoError(t, m.RecordAndSetHero(ctx, img))
	}

	require.NoError(t, m.DeleteFromHistory(ctx, 1))
	assert.Equal(t, []string{"c", "a"}, m.History(ctx))

	require.NoError(t, m.DeleteFromHistory(ctx, 0))
	assert.Equal(t, []string{"a"}, m.History(ctx))
	assert.Equal(t, "c", m.Current(ctx), "deleting the shown image keeps it as hero")
}

func TestDeleteFromHistoryOutOfRange(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	require.NoError(t, m.RecordAndSetHero(ctx, "a"))

	for _, idx := range []int{-1, 1, 42} {
		err := m.DeleteFromHistory(ctx, idx)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound), "index %d", idx)
	}
	assert.Equal(t, []string{"a"}, m.History(ctx))
}

func TestCorruptHistoryReadsEmpty(t *testing.T) {
	ctx := context.Background()
	m, backend := newTestManager(t)
	require.NoError(t, backend.Set(ctx, HistoryKey, `{"not":"a list"}`))

	assert.Empty(t, m.History(ctx))

	require.NoError(t, m.RecordAndSetHero(ctx, "fresh"))
	assert.Equal(t, []string{"fresh"}, m.History(ctx))
}

func TestManagerStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewStore(downBackend{}, nil), nil)

	assert.Equal(t, DefaultHero, m.Current(ctx))
	assert.Empty(t, m.History(ctx))

	assert.True(t, apperr.IsCode(m.SetAsHero(ctx, "x"), apperr.CodeUnavailable))
	assert.True(t, apperr.IsCode(m.RecordAndSetHero(ctx, "x"), apperr.CodeUnavailable))
	assert.True(t, apperr.IsCode(m.DeleteFromHistory(ctx, 0), apperr.CodeUnavailable))
}

type downBackend struct{}

func (downBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}
func (downBackend) Set(context.Context, string, string) error {
	return errors.New("connection refused")
}
func (downBackend) Delete(context.Context, string) error { return errors.New("connection refused") }
