package service

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

// ProjectRepository defines the repository interface for the service layer
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	WordsPerDay(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) ProjectRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// CreateProjectInput holds the fields a user supplies for a new project.
type CreateProjectInput struct {
	Title    string
	Platform string
	Tone     string
	// Generate asks for content to be written immediately, using Title as
	// the topic. The project is then stored as Completed.
	Generate bool
}

// UpdateProjectInput holds optional changes to a project. Nil fields are left alone.
type UpdateProjectInput struct {
	Title   *string
	Content *string
	Status  *string
}

// ProjectService provides project-related operations. Every operation is
// scoped to userID; touching another user's project yields ErrProjectNotOwned.
type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, input CreateProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Project, error)
	GetProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error)
	UpdateProject(
		ctx context.Context,
		userID, projectID uuid.UUID,
		input UpdateProjectInput,
	) (*domain.Project, error)
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error

	// UsageLastDays returns the words a user produced per day over the last
	// domain.UsageDays days, ending today (UTC).
	UsageLastDays(ctx context.Context, userID uuid.UUID) (domain.UsageSummary, error)
}

type projectServiceImpl struct {
	projectRepo ProjectRepository
	content     ContentService
	logger      *slog.Logger
	now         func() time.Time
}

// NewProjectService creates a new ProjectService.
// content may be nil, in which case projects can not be created with Generate set.
func NewProjectService(
	projectRepo ProjectRepository,
	content ContentService,
	log *slog.Logger,
) (ProjectService, error) {
	if projectRepo == nil {
		return nil, fmt.Errorf("%w: projectRepo cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &projectServiceImpl{
		projectRepo: projectRepo,
		content:     content,
		logger:      log.With(slog.String("component", "project_service")),
		now:         time.Now,
	}, nil
}

// CreateProject implements ProjectService.CreateProject
func (s *projectServiceImpl) CreateProject(
	ctx context.Context,
	userID uuid.UUID,
	input CreateProjectInput,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	project, err := domain.NewProject(userID, input.Title, input.Platform, input.Tone)
	if err != nil {
		log.Debug("invalid project input", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}

	if input.Generate {
		if s.content == nil {
			return nil, &ServiceError{Operation: "create_project", Message: "content generation is not configured"}
		}
		text, err := s.content.GenerateContent(ctx, project.Title, project.Platform, project.Tone)
		if err != nil {
			log.Warn("content generation failed for new project",
				slog.String("project_id", project.ID.String()),
				slog.String("error", err.Error()))
			return nil, err
		}
		project.SetContent(text)
		project.Status = domain.ProjectStatusCompleted
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("create_project", "failed to save project", err)
	}

	log.Info("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("status", string(project.Status)),
		slog.Int("words", project.Words))
	return project, nil
}

// ListProjects implements ProjectService.ListProjects
func (s *projectServiceImpl) ListProjects(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Project, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list projects",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("list_projects", "failed to list projects", err)
	}
	return projects, nil
}

// GetProject implements ProjectService.GetProject
func (s *projectServiceImpl) GetProject(
	ctx context.Context,
	userID, projectID uuid.UUID,
) (*domain.Project, error) {
	return s.getOwned(ctx, s.projectRepo, "get_project", userID, projectID)
}

// UpdateProject implements ProjectService.UpdateProject
// The read, the ownership check and the write share one transaction.
func (s *projectServiceImpl) UpdateProject(
	ctx context.Context,
	userID, projectID uuid.UUID,
	input UpdateProjectInput,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Project
	err := store.RunInTransaction(ctx, s.projectRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.projectRepo.WithTx(tx)

		project, err := s.getOwned(ctx, txRepo, "update_project", userID, projectID)
		if err != nil {
			return err
		}

		if err := applyUpdate(project, input); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProject, err)
		}

		if err := txRepo.Update(ctx, project); err != nil {
			log.Error("failed to update project",
				slog.String("error", err.Error()),
				slog.String("project_id", projectID.String()))
			return NewServiceError("update_project", "failed to save project", err)
		}

		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("project updated", slog.String("project_id", projectID.String()))
	return updated, nil
}

// DeleteProject implements ProjectService.DeleteProject
func (s *projectServiceImpl) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.projectRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.projectRepo.WithTx(tx)

		if _, err := s.getOwned(ctx, txRepo, "delete_project", userID, projectID); err != nil {
			return err
		}

		if err := txRepo.Delete(ctx, projectID); err != nil {
			log.Error("failed to delete project",
				slog.String("error", err.Error()),
				slog.String("project_id", projectID.String()))
			return NewServiceError("delete_project", "failed to delete project", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("project deleted", slog.String("project_id", projectID.String()))
	return nil
}

// UsageLastDays implements ProjectService.UsageLastDays
func (s *projectServiceImpl) UsageLastDays(ctx context.Context, userID uuid.UUID) (domain.UsageSummary, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -(domain.UsageDays - 1))

	words, err := s.projectRepo.WordsPerDay(ctx, userID, since)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load usage",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return domain.UsageSummary{}, NewServiceError("usage", "failed to load word counts", err)
	}

	return domain.BuildUsageSummary(today, domain.UsageDays, words), nil
}

func (s *projectServiceImpl) getOwned(
	ctx context.Context,
	repo ProjectRepository,
	operation string,
	userID, projectID uuid.UUID,
) (*domain.Project, error) {
	project, err := repo.GetByID(ctx, projectID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to load project",
				slog.String("error", err.Error()),
				slog.String("project_id", projectID.String()))
		}
		return nil, NewServiceError(operation, "failed to load project", err)
	}

	if project.UserID != userID {
		logger.FromContextOrDefault(ctx, s.logger).Warn("project access denied",
			slog.String("project_id", projectID.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrProjectNotOwned
	}

	return project, nil
}

func applyUpdate(project *domain.Project, input UpdateProjectInput) error {
	if input.Title != nil {
		if err := project.Rename(*input.Title); err != nil {
			return err
		}
	}
	if input.Content != nil {
		project.SetContent(*input.Content)
	}
	if input.Status != nil {
		status, err := domain.ParseProjectStatus(*input.Status)
		if err != nil {
			return err
		}
		if err := project.UpdateStatus(status); err != nil {
			return err
		}
	}
	if input.Title == nil && input.Content == nil && input.Status == nil {
		return errors.New("no changes requested")
	}
	return nil
}
