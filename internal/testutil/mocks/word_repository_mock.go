package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mhayashi/hskdrill/internal/models"
)

// MockWordRepository is a mock implementation of repository.WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Word), args.Error(1)
}

func (m *MockWordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockWordRepository) Count(ctx context.Context, level int) (int, error) {
	args := m.Called(ctx, level)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) Levels(ctx context.Context) ([]models.LevelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LevelCount), args.Error(1)
}

func (m *MockWordRepository) ReplaceAll(ctx context.Context, words []models.Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}
