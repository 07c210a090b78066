package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/copyforge-api/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project. Returns validation errors from the domain
	// Project if data is invalid.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// ListByUser returns a user's projects, newest first.
	// Returns an empty slice if the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Project, error)

	// Update saves changes to an existing project.
	// Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project. Returns ErrProjectNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WordsPerDay sums the words of a user's projects created at or after
	// since, grouped by UTC calendar day (YYYY-MM-DD).
	WordsPerDay(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error)

	// WithTx returns a ProjectStore that runs its queries on tx.
	WithTx(tx *sql.Tx) ProjectStore
}
