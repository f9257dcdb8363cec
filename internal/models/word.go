package models

import "time"

// Word is one HSK vocabulary record. Words are immutable once loaded; a
// session borrows them read-only from the fetch result.
type Word struct {
	ID          int64     `json:"id"`
	Chinese     string    `json:"chinese"`
	Pinyin      string    `json:"pinyin"`
	PinyinToned string    `json:"pinyin_toned"`
	Meaning     string    `json:"meaning"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
}

// Complete reports whether all four text fields are populated. Sessions must
// never see a word that fails this check.
func (w Word) Complete() bool {
	return w.Chinese != "" && w.Pinyin != "" && w.PinyinToned != "" && w.Meaning != ""
}

type WordFilter struct {
	Level int
	Limit int // <= 0 means no limit
}

// LevelCount is the number of words available at one HSK level.
type LevelCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}
