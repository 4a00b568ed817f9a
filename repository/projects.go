package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aipirat/models"
	"aipirat/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectsKey holds the JSON array of all projects, newest first by convention.
const ProjectsKey = "zenith_portfolio_projects"

// ProjectRepository keeps the project collection as one JSON value in the store.
type ProjectRepository struct {
	store *storage.Store
	log   *zap.Logger
	now   func() time.Time

	// serializes reads, seeding and read-modify-write cycles within this process
	mu sync.Mutex
}

func NewProjectRepository(store *storage.Store, log *zap.Logger) *ProjectRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectRepository{store: store, log: log, now: time.Now}
}

// GetProjects returns the stored collection. Missing or malformed data is replaced
// by the seeded defaults; an unreachable store yields the defaults unpersisted.
func (r *ProjectRepository) GetProjects(ctx context.Context) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		r.log.Warn("project storage unavailable, serving defaults", zap.Error(err))
		return DefaultProjects(r.now()), nil
	}
	return projects, nil
}

// GetProjectByID scans the collection for id.
func (r *ProjectRepository) GetProjectByID(ctx context.Context, id string) (models.Project, bool, error) {
	projects, err := r.GetProjects(ctx)
	if err != nil {
		return models.Project{}, false, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.Project{}, false, nil
}

// SaveProject overwrites the project with p.ID in place, or prepends p when no
// such id exists. An empty id is replaced with a fresh one.
func (r *ProjectRepository) SaveProject(ctx context.Context, p models.Project) (models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return models.Project{}, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	normalize(&p)

	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append([]models.Project{p}, projects...)
	}

	if err := r.store.SetJSON(ctx, ProjectsKey, projects); err != nil {
		return models.Project{}, fmt.Errorf("save project %s: %w", p.ID, err)
	}

	r.log.Info("project saved", zap.String("id", p.ID), zap.Bool("created", !replaced))
	return p, nil
}

// DeleteProject removes the project with id. Unknown ids are a no-op.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if err := r.store.SetJSON(ctx, ProjectsKey, kept); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	r.log.Info("project deleted", zap.String("id", id), zap.Bool("existed", len(kept) != len(projects)))
	return nil
}

// load reads the collection, seeding it when absent or corrupt. Only an
// unreachable store is reported as an error. Callers hold r.mu.
func (r *ProjectRepository) load(ctx context.Context) ([]models.Project, error) {
	res := r.store.Get(ctx, ProjectsKey)
	switch res.Status {
	case storage.StatusOK:
		projects, err := decodeProjects(res.Value)
		if err == nil {
			return projects, nil
		}
		r.log.Warn("stored projects are malformed, reseeding", zap.Error(err))
		return r.seed(ctx), nil
	case storage.StatusNotFound:
		return r.seed(ctx), nil
	default:
		return nil, res.Err
	}
}

func (r *ProjectRepository) seed(ctx context.Context) []models.Project {
	defaults := DefaultProjects(r.now())
	if err := r.store.SetJSON(ctx, ProjectsKey, defaults); err != nil {
		r.log.Warn("seeding default projects failed", zap.Error(err))
	}
	return defaults
}
