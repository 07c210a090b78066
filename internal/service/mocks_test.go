package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/copyforge-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository mocks the ProjectRepository interface
type MockProjectRepository struct {
	mock.Mock
	db *sql.DB
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Project, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) WordsPerDay(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (map[string]int, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// WithTx returns the same mock so expectations apply inside transactions.
func (m *MockProjectRepository) WithTx(tx *sql.Tx) ProjectRepository {
	return m
}

func (m *MockProjectRepository) DB() *sql.DB {
	return m.db
}

// MockContentService mocks the ContentService interface
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) GenerateContent(ctx context.Context, topic, platform, tone string) (string, error) {
	args := m.Called(ctx, topic, platform, tone)
	return args.String(0), args.Error(1)
}

func (m *MockContentService) RefineContent(ctx context.Context, content, instruction string) (string, error) {
	args := m.Called(ctx, content, instruction)
	return args.String(0), args.Error(1)
}

// MockGenerator mocks the generation.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt, credential string) (string, error) {
	args := m.Called(ctx, prompt, credential)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Refine(ctx context.Context, text, instruction, credential string) (string, error) {
	args := m.Called(ctx, text, instruction, credential)
	return args.String(0), args.Error(1)
}
