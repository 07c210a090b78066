package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/copyforge-api/internal/domain"
	"github.com/phrazzld/copyforge-api/internal/platform/logger"
	"github.com/phrazzld/copyforge-api/internal/store"
)

// DefaultListLimit applies when ListByUser is called without a positive limit.
const DefaultListLimit = 50

const projectColumns = `id, user_id, title, platform, tone, content, status, words, created_at, updated_at`

// PostgresProjectStore implements store.ProjectStore on PostgreSQL.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// NewPostgresProjectStore creates a project store on db, which may be a
// *sql.DB or *sql.Tx. If logger is nil, slog.Default() is used.
func NewPostgresProjectStore(db store.DBTX, log *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresProjectStore{
		db:     db,
		logger: log.With(slog.String("component", "project_store")),
	}
}

// WithTx implements store.ProjectStore.
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{db: tx, logger: s.logger}
}

// Create implements store.ProjectStore.
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.WarnContext(ctx, "project validation failed during create",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		project.ID,
		project.UserID,
		project.Title,
		project.Platform,
		project.Tone,
		project.Content,
		string(project.Status),
		project.Words,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	log.InfoContext(ctx, "project created",
		slog.String("project_id", project.ID.String()),
		slog.String("user_id", project.UserID.String()))
	return nil
}

// GetByID implements store.ProjectStore.
func (s *PostgresProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.DebugContext(ctx, "project not found", slog.String("project_id", id.String()))
			return nil, store.ErrProjectNotFound
		}
		log.ErrorContext(ctx, "failed to get project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return nil, MapError(err)
	}

	return project, nil
}

// ListByUser implements store.ProjectStore.
func (s *PostgresProjectStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		log.ErrorContext(ctx, "failed to list projects",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close rows", slog.String("error", err.Error()))
		}
	}()

	projects := []*domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			log.ErrorContext(ctx, "failed to scan project row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.DebugContext(ctx, "listed projects",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(projects)))
	return projects, nil
}

// Update implements store.ProjectStore.
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.WarnContext(ctx, "project validation failed during update",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET title = $1, platform = $2, tone = $3, content = $4, status = $5, words = $6, updated_at = $7
		WHERE id = $8`,
		project.Title,
		project.Platform,
		project.Tone,
		project.Content,
		string(project.Status),
		project.Words,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to update project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProjectNotFound)
}

// Delete implements store.ProjectStore.
func (s *PostgresProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		log.ErrorContext(ctx, "failed to delete project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrProjectNotFound); err != nil {
		return err
	}

	log.InfoContext(ctx, "project deleted", slog.String("project_id", id.String()))
	return nil
}

// WordsPerDay implements store.ProjectStore.
func (s *PostgresProjectStore) WordsPerDay(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (map[string]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COALESCE(SUM(words), 0)
		FROM projects
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY day`,
		userID, since.UTC())
	if err != nil {
		log.ErrorContext(ctx, "failed to aggregate words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	words := make(map[string]int)
	for rows.Next() {
		var (
			day   string
			total int64
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, MapError(err)
		}
		words[day] = int(total)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return words, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		project domain.Project
		status  string
	)
	if err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Platform,
		&project.Tone,
		&project.Content,
		&status,
		&project.Words,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	project.Status = domain.ProjectStatus(status)
	return &project, nil
}
