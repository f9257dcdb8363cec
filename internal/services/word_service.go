package services

import (
	"context"

	"github.com/mhayashi/hskdrill/internal/errors"
	"github.com/mhayashi/hskdrill/internal/logger"
	"github.com/mhayashi/hskdrill/internal/models"
	"github.com/mhayashi/hskdrill/internal/repository"
)

// HSK levels run 1 through 6.
const (
	MinLevel = 1
	MaxLevel = 6
)

// WordService is the word lookup surface the drill sessions consume.
type WordService interface {
	// Fetch returns words at the given level. A positive limit means an
	// independently drawn random subset of exactly limit items (or the whole
	// level when it has fewer).
	Fetch(ctx context.Context, level, limit int) ([]models.Word, error)
	Levels(ctx context.Context) ([]models.LevelCount, error)
	Get(ctx context.Context, id int64) (*models.Word, error)
}

type wordService struct {
	repo repository.WordRepository
}

// NewWordService creates a new WordService
func NewWordService(repo repository.WordRepository) WordService {
	return &wordService{repo: repo}
}

func (s *wordService) Fetch(ctx context.Context, level, limit int) ([]models.Word, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching words: level=%d, limit=%d", level, limit)

	if level < MinLevel || level > MaxLevel {
		return nil, errors.NewValidationError("level", "must be between 1 and 6")
	}
	if limit < 0 {
		return nil, errors.NewValidationError("limit", "cannot be negative")
	}

	words, err := s.repo.List(ctx, models.WordFilter{Level: level, Limit: limit})
	if err != nil {
		log.Error("word fetch failed: %v", err)
		return nil, errors.NewFetchError(err)
	}

	log.Debug("fetched %d words", len(words))
	return words, nil
}

func (s *wordService) Levels(ctx context.Context) ([]models.LevelCount, error) {
	log := logger.FromContext(ctx)

	levels, err := s.repo.Levels(ctx)
	if err != nil {
		log.Error("failed to list levels: %v", err)
		return nil, errors.NewFetchError(err)
	}
	return levels, nil
}

func (s *wordService) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx)

	word, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}
