package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mhayashi/hskdrill/internal/errors"
	"github.com/mhayashi/hskdrill/internal/logger"
	"github.com/mhayashi/hskdrill/internal/models"
	"github.com/mhayashi/hskdrill/internal/repository"
)

// csvHeader is the exported column order of the word list CSV.
var csvHeader = []string{"Id", "Chinese", "Pinyin", "Pinyin_With_Tone", "Japanese_Meaning", "Hsk_Level"}

// ImportService loads the word table from a CSV export.
type ImportService interface {
	// ImportCSV replaces the word table with the file's contents and returns
	// the number of imported words.
	ImportCSV(ctx context.Context, path string) (int, error)
}

type importService struct {
	repo repository.WordRepository
}

// NewImportService creates a new ImportService
func NewImportService(repo repository.WordRepository) ImportService {
	return &importService{repo: repo}
}

func (s *importService) ImportCSV(ctx context.Context, path string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("import")
	log.Info("importing words from %s", path)

	f, err := os.Open(path)
	if err != nil {
		log.Error("failed to open csv: %v", err)
		return 0, errors.NewInternalError(err)
	}
	defer f.Close()

	words, err := parseWordsCSV(f)
	if err != nil {
		log.Error("failed to parse csv: %v", err)
		return 0, errors.NewBadRequestError(err.Error())
	}

	if err := s.repo.ReplaceAll(ctx, words); err != nil {
		log.Error("failed to store imported words: %v", err)
		return 0, errors.NewInternalError(err)
	}

	log.Info("imported %d words", len(words))
	return len(words), nil
}

func parseWordsCSV(r io.Reader) ([]models.Word, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// Exports written with a UTF-8 BOM keep it on the first header cell.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i, want := range csvHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], want)
		}
	}

	var words []models.Word
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		word, err := parseWordRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		words = append(words, word)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("csv contains no words")
	}
	return words, nil
}

func parseWordRecord(record []string) (models.Word, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return models.Word{}, fmt.Errorf("invalid id %q", record[0])
	}
	level, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil || level < MinLevel || level > MaxLevel {
		return models.Word{}, fmt.Errorf("invalid level %q", record[5])
	}

	w := models.Word{
		ID:          id,
		Chinese:     strings.TrimSpace(record[1]),
		Pinyin:      strings.TrimSpace(record[2]),
		PinyinToned: strings.TrimSpace(record[3]),
		Meaning:     strings.TrimSpace(record[4]),
		Level:       level,
	}
	if !w.Complete() {
		return models.Word{}, fmt.Errorf("word %d has an empty text field", id)
	}
	return w, nil
}
