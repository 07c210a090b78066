package mocks

import (
	"context"

	"github.com/phrazzld/copyforge-api/internal/service"
)

// MockContentService implements service.ContentService for testing
type MockContentService struct {
	GenerateContentFn func(ctx context.Context, topic, platform, tone string) (string, error)
	RefineContentFn   func(ctx context.Context, content, instruction string) (string, error)

	// Default values used when functions aren't explicitly defined
	Text string
	Err  error
}

var _ service.ContentService = (*MockContentService)(nil)

// GenerateContent implements service.ContentService
func (m *MockContentService) GenerateContent(ctx context.Context, topic, platform, tone string) (string, error) {
	if m.GenerateContentFn != nil {
		return m.GenerateContentFn(ctx, topic, platform, tone)
	}
	return m.Text, m.Err
}

// RefineContent implements service.ContentService
func (m *MockContentService) RefineContent(ctx context.Context, content, instruction string) (string, error) {
	if m.RefineContentFn != nil {
		return m.RefineContentFn(ctx, content, instruction)
	}
	return m.Text, m.Err
}
