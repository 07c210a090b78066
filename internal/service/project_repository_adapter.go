package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/copyforge-api/internal/domain"
	"github.com/phrazzld/copyforge-api/internal/store"
)

// NewProjectRepositoryAdapter creates a new adapter that allows a
// store.ProjectStore to be used where a ProjectRepository is expected.
func NewProjectRepositoryAdapter(projectStore store.ProjectStore, db *sql.DB) ProjectRepository {
	return &projectRepositoryAdapter{
		projectStore: projectStore,
		db:           db,
	}
}

// projectRepositoryAdapter adapts a store.ProjectStore to the ProjectRepository interface
type projectRepositoryAdapter struct {
	projectStore store.ProjectStore
	db           *sql.DB
}

// Create implements ProjectRepository.Create
func (a *projectRepositoryAdapter) Create(ctx context.Context, project *domain.Project) error {
	return a.projectStore.Create(ctx, project)
}

// GetByID implements ProjectRepository.GetByID
func (a *projectRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return a.projectStore.GetByID(ctx, id)
}

// ListByUser implements ProjectRepository.ListByUser
func (a *projectRepositoryAdapter) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Project, error) {
	return a.projectStore.ListByUser(ctx, userID, limit, offset)
}

// Update implements ProjectRepository.Update
func (a *projectRepositoryAdapter) Update(ctx context.Context, project *domain.Project) error {
	return a.projectStore.Update(ctx, project)
}

// Delete implements ProjectRepository.Delete
func (a *projectRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.projectStore.Delete(ctx, id)
}

// WordsPerDay implements ProjectRepository.WordsPerDay
func (a *projectRepositoryAdapter) WordsPerDay(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (map[string]int, error) {
	return a.projectStore.WordsPerDay(ctx, userID, since)
}

// WithTx implements ProjectRepository.WithTx
func (a *projectRepositoryAdapter) WithTx(tx *sql.Tx) ProjectRepository {
	return &projectRepositoryAdapter{
		projectStore: a.projectStore.WithTx(tx),
		db:           a.db,
	}
}

// DB implements ProjectRepository.DB
func (a *projectRepositoryAdapter) DB() *sql.DB {
	return a.db
}
