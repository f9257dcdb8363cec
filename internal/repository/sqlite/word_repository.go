package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/mhayashi/hskdrill/internal/db"
	"github.com/mhayashi/hskdrill/internal/logger"
	"github.com/mhayashi/hskdrill/internal/models"
	"github.com/mhayashi/hskdrill/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type wordRepository struct {
	db *db.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(database *db.DB) repository.WordRepository {
	return &wordRepository{db: database}
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting word: id=%d", id)

	var w models.Word
	err := r.db.QueryRowContext(ctx, `
SELECT id, chinese, pinyin, pinyin_toned, meaning, level, created_at
FROM words
WHERE id = ?
`, id).Scan(&w.ID, &w.Chinese, &w.Pinyin, &w.PinyinToned, &w.Meaning, &w.Level, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("word not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words: level=%d, limit=%d", filter.Level, filter.Limit)

	query := sqlBuilder.Select(
		"id", "chinese", "pinyin", "pinyin_toned", "meaning", "level", "created_at",
	).From("words")

	if filter.Level != 0 {
		query = query.Where(squirrel.Eq{"level": filter.Level})
	}

	// Rows with any empty text field must never reach a session.
	query = query.Where("chinese != '' AND pinyin != '' AND pinyin_toned != '' AND meaning != ''")

	// A limit means an independently drawn random subset, not the first N.
	if filter.Limit > 0 {
		query = query.OrderBy("RANDOM()").Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Chinese, &w.Pinyin, &w.PinyinToned, &w.Meaning, &w.Level, &w.CreatedAt); err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func (r *wordRepository) Count(ctx context.Context, level int) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query := sqlBuilder.Select("COUNT(*)").From("words")
	if level != 0 {
		query = query.Where(squirrel.Eq{"level": level})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count words: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *wordRepository) Levels(ctx context.Context) ([]models.LevelCount, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing levels")

	rows, err := r.db.QueryContext(ctx, `
SELECT level, COUNT(*) AS count
FROM words
GROUP BY level
ORDER BY level
`)
	if err != nil {
		log.Error("failed to list levels: %v", err)
		return nil, err
	}
	defer rows.Close()

	var levels []models.LevelCount
	for rows.Next() {
		var lc models.LevelCount
		if err := rows.Scan(&lc.Level, &lc.Count); err != nil {
			log.Error("failed to scan level row: %v", err)
			return nil, err
		}
		levels = append(levels, lc)
	}
	return levels, rows.Err()
}

func (r *wordRepository) ReplaceAll(ctx context.Context, words []models.Word) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("replacing all words: count=%d", len(words))

	err := r.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
			log.Error("failed to clear words: %v", err)
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO words (id, chinese, pinyin, pinyin_toned, meaning, level)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			log.Error("failed to prepare insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, w := range words {
			if _, err := stmt.ExecContext(ctx, w.ID, w.Chinese, w.Pinyin, w.PinyinToned, w.Meaning, w.Level); err != nil {
				log.Error("failed to insert word id=%d: %v", w.ID, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("imported %d words", len(words))
	return nil
}
