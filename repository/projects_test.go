package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"aipirat/models"
	"aipirat/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, backend storage.Backend) *ProjectRepository {
	t.Helper()
	r := NewProjectRepository(storage.NewStore(backend, nil), nil)
	r.now = func() time.Time { return fixedNow }
	return r
}

func titles(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestGetProjectsSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	repo := newTestRepo(t, backend)

	projects, err := repo.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nexus Analytics Dashboard", "Aether eCommerce"}, titles(projects))

	_, found, err := backend.Get(ctx, ProjectsKey)
	require.NoError(t, err)
	assert.True(t, found, "defaults are persisted")

	// a later clock must not change what a second read returns
	repo.now = func() time.Time { return fixedNow.Add(time.Hour) }
	again, err := repo.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, projects, again)
}

func TestGetProjectsReseedsMalformedData(t *testing.T) {
	cases := map[string]string{
		"invalid json":       "{not json",
		"wrong shape":        `{"id":"1"}`,
		"missing id":         `[{"title":"x"}]`,
		"wrong field type":   `[{"id":"1","title":"x","tags":"react"}]`,
		"non-integer stamps": `[{"id":"1","title":"x","createdAt":"yesterday"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			backend := storage.NewMemory()
			require.NoError(t, backend.Set(ctx, ProjectsKey, raw))
			repo := newTestRepo(t, backend)

			projects, err := repo.GetProjects(ctx)
			require.NoError(t, err)
			assert.Len(t, projects, 2)

			stored, _, _ := backend.Get(ctx, ProjectsKey)
			assert.NotEqual(t, raw, stored, "corrupt value was replaced")
		})
	}
}

func TestGetProjectsStorageUnavailable(t *testing.T) {
	repo := newTestRepo(t, failingBackend{})

	projects, err := repo.GetProjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestSaveProjectPrependsNew(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, storage.NewMemory())

	saved, err := repo.SaveProject(ctx, models.Project{Title: "X"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotNil(t, saved.Tags)
	assert.NotNil(t, saved.Images)

	projects, err := repo.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Nexus Analytics Dashboard", "Aether eCommerce"}, titles(projects))

	require.NoError(t, repo.DeleteProject(ctx, saved.ID))
	projects, err = repo.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nexus Analytics Dashboard", "Aether eCommerce"}, titles(projects))
}

func TestSaveProjectOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, storage.NewMemory())

	_, err := repo.SaveProject(ctx, models.Project{ID: "2", Title: "Aether v2", Tags: []string{"Go"}})
	require.NoError(t, err)

	projects, err := repo.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Aether v2", projects[1].Title, "index preserved")
	assert.Equal(t, []string{"Go"}, projects[1].Tags)
	assert.Empty(t, projects[1].Description, "full overwrite, no patching")
}

func TestSaveProjectUnknownIDIsInserted(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, storage.NewMemory())

	saved, err := repo.SaveProject(ctx, models.Project{ID: "custom", Title: "Imported"})
	require.NoError(t, err)
	assert.Equal(t, "custom", saved.ID)

	p, found, err := repo.GetProjectByID(ctx, "custom")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Imported", p.Title)
}

func TestSaveProjectLastWriteWinsPerID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, storage.NewMemory())

	ids := []string{"a", "b", "a", "c", "b", "a"}
	for i, id := range ids {
		_, err := repo.SaveProject(ctx, models.Project{ID: id, Title: fmt.Sprintf("%s-%d", id, i)})
		require.NoError(t, err)
	}

	projects, err := repo.GetProjects(ctx)
	require.NoError(t, err)

	seen := map[string]models.Project{}
	for _, p := range projects {
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %s", p.ID)
		seen[p.ID] = p
	}
	assert.Len(t, projects, 5)
	assert.Equal(t, "a-5", seen["a"].Title)
	assert.Equal(t, "b-4", seen["b"].Title)
	assert.Equal(t, "c-3", seen["c"].Title)
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, storage.NewMemory())

	require.NoError(t, repo.DeleteProject(ctx, "1"))
	projects, err := repo.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aether eCommerce"}, titles(projects))

	_, found, err := repo.GetProjectByID(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteProjectUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, storage.NewMemory())

	require.NoError(t, repo.DeleteProject(ctx, "does-not-exist"))
	projects, err := repo.GetProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestWritesPropagateStorageFailures(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, failingBackend{})

	_, err := repo.SaveProject(ctx, models.Project{Title: "X"})
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	err = repo.DeleteProject(ctx, "1")
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestSeedingDoesNotOverwriteConcurrentSave(t *testing.T) {
	ctx := context.Background()
	backend := newGatedBackend()
	repo := newTestRepo(t, backend)

	readDone := make(chan error, 1)
	go func() {
		_, err := repo.GetProjects(ctx)
		readDone <- err
	}()
	<-backend.entered

	saveDone := make(chan error, 1)
	go func() {
		_, err := repo.SaveProject(ctx, models.Project{Title: "X"})
		saveDone <- err
	}()

	// let the save run while the first read is still parked in the backend
	time.Sleep(20 * time.Millisecond)
	close(backend.release)
	require.NoError(t, <-readDone)
	require.NoError(t, <-saveDone)

	projects, err := repo.GetProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Nexus Analytics Dashboard", "Aether eCommerce"}, titles(projects))
}

// gatedBackend parks the first Get until release is closed.
type gatedBackend struct {
	*storage.Memory
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedBackend() *gatedBackend {
	return &gatedBackend{
		Memory:  storage.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedBackend) Get(ctx context.Context, key string) (string, bool, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.Memory.Get(ctx, key)
}

type failingBackend struct{}

func (failingBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage offline")
}
func (failingBackend) Set(context.Context, string, string) error {
	return errors.New("storage offline")
}
func (failingBackend) Delete(context.Context, string) error { return errors.New("storage offline") }
