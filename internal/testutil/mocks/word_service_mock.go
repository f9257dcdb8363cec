package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mhayashi/hskdrill/internal/models"
)

// MockWordService is a mock implementation of services.WordService
type MockWordService struct {
	mock.Mock
}

func (m *MockWordService) Fetch(ctx context.Context, level, limit int) ([]models.Word, error) {
	args := m.Called(ctx, level, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockWordService) Levels(ctx context.Context) ([]models.LevelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LevelCount), args.Error(1)
}

func (m *MockWordService) Get(ctx context.Context, id int64) (*models.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Word), args.Error(1)
}
