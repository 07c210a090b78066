package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/copyforge-api/internal/domain"
	"github.com/phrazzld/copyforge-api/internal/service"
)

// MockProjectService implements service.ProjectService for testing.
// Methods without an Fn return zero values and Err.
type MockProjectService struct {
	CreateProjectFn func(ctx context.Context, userID uuid.UUID, input service.CreateProjectInput) (*domain.Project, error)
	ListProjectsFn  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Project, error)
	GetProjectFn    func(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error)
	UpdateProjectFn func(
		ctx context.Context,
		userID, projectID uuid.UUID,
		input service.UpdateProjectInput,
	) (*domain.Project, error)
	DeleteProjectFn func(ctx context.Context, userID, projectID uuid.UUID) error
	UsageLastDaysFn func(ctx context.Context, userID uuid.UUID) (domain.UsageSummary, error)

	Err error
}

var _ service.ProjectService = (*MockProjectService)(nil)

// CreateProject implements service.ProjectService
func (m *MockProjectService) CreateProject(
	ctx context.Context,
	userID uuid.UUID,
	input service.CreateProjectInput,
) (*domain.Project, error) {
	if m.CreateProjectFn != nil {
		return m.CreateProjectFn(ctx, userID, input)
	}
	return nil, m.Err
}

// ListProjects implements service.ProjectService
func (m *MockProjectService) ListProjects(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Project, error) {
	if m.ListProjectsFn != nil {
		return m.ListProjectsFn(ctx, userID, limit, offset)
	}
	return nil, m.Err
}

// GetProject implements service.ProjectService
func (m *MockProjectService) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	if m.GetProjectFn != nil {
		return m.GetProjectFn(ctx, userID, projectID)
	}
	return nil, m.Err
}

// UpdateProject implements service.ProjectService
func (m *MockProjectService) UpdateProject(
	ctx context.Context,
	userID, projectID uuid.UUID,
	input service.UpdateProjectInput,
) (*domain.Project, error) {
	if m.UpdateProjectFn != nil {
		return m.UpdateProjectFn(ctx, userID, projectID, input)
	}
	return nil, m.Err
}

// DeleteProject implements service.ProjectService
func (m *MockProjectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if m.DeleteProjectFn != nil {
		return m.DeleteProjectFn(ctx, userID, projectID)
	}
	return m.Err
}

// UsageLastDays implements service.ProjectService
func (m *MockProjectService) UsageLastDays(ctx context.Context, userID uuid.UUID) (domain.UsageSummary, error) {
	if m.UsageLastDaysFn != nil {
		return m.UsageLastDaysFn(ctx, userID)
	}
	return domain.UsageSummary{}, m.Err
}
