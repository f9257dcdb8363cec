package repository

import (
	"context"

	"github.com/mhayashi/hskdrill/internal/models"
)

// WordRepository handles word data access
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, level int) (int, error)
	Levels(ctx context.Context) ([]models.LevelCount, error)
	ReplaceAll(ctx context.Context, words []models.Word) error
}
