package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

// Word is a row in the words table. The word column always holds the
// normalized form (lowercased, stress marks stripped); raw spellings from
// texts are normalized before they reach the database.
type Word struct {
	Word        string       `json:"word"`
	Translation *string      `json:"translation,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	Stage       uktext.Stage `json:"stage"`
	AddedAt     int64        `json:"added_at"`
	UpdatedAt   int64        `json:"updated_at"`
}

// TextProgress is a row in the text_progress table.
type TextProgress struct {
	TextID    string `json:"text_id"`
	LastRead  int64  `json:"last_read"`
	TimesRead int    `json:"times_read"`
}

// GetWord retrieves a vocabulary entry by word. The lookup is normalized,
// so accented or capitalized spellings find the stored entry.
func GetWord(db *sql.DB, word string) (*Word, error) {
	norm := uktext.NormalizeWord(word)

	row := db.QueryRow(`
		SELECT word, translation, notes, stage, added_at, updated_at
		FROM words WHERE word = ?
	`, norm)

	w, err := scanWord(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("word", norm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return w, nil
}

// WordsByStage returns all words with the given stage, most recently
// updated first.
func WordsByStage(db *sql.DB, stage uktext.Stage) ([]*Word, error) {
	rows, err := db.Query(`
		SELECT word, translation, notes, stage, added_at, updated_at
		FROM words WHERE stage = ? ORDER BY updated_at DESC
	`, string(stage))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// AllWords returns the full vocabulary, most recently updated first.
func AllWords(db *sql.DB) ([]*Word, error) {
	rows, err := db.Query(`
		SELECT word, translation, notes, stage, added_at, updated_at
		FROM words ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// StageSet returns the normalized word strings at the given stage as a set,
// in the shape the annotator consumes.
func StageSet(db *sql.DB, stage uktext.Stage) (map[string]bool, error) {
	rows, err := db.Query(`SELECT word FROM words WHERE stage = ?`, string(stage))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, errors.NewInternal(err)
		}
		set[w] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return set, nil
}

// SaveWord inserts or updates a full vocabulary entry. On conflict the
// stage always updates; translation and notes only update when non-nil.
func SaveWord(db *sql.DB, w *Word) error {
	now := time.Now().Unix()
	norm := uktext.NormalizeWord(w.Word)

	_, err := db.Exec(`
		INSERT INTO words (word, translation, notes, stage, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			translation = COALESCE(excluded.translation, translation),
			notes = COALESCE(excluded.notes, notes),
			stage = excluded.stage,
			updated_at = excluded.updated_at
	`, norm, toNullString(w.Translation), toNullString(w.Notes), string(w.Stage), now, now)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// SetStage sets the stage for a word, creating the entry if needed.
func SetStage(db *sql.DB, word string, stage uktext.Stage) error {
	now := time.Now().Unix()
	norm := uktext.NormalizeWord(word)

	_, err := db.Exec(`
		INSERT INTO words (word, stage, added_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			stage = excluded.stage,
			updated_at = excluded.updated_at
	`, norm, string(stage), now, now)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// BulkSetStage sets the stage for multiple words in a single transaction.
func BulkSetStage(db *sql.DB, words []string, stage uktext.Stage) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO words (word, stage, added_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			stage = excluded.stage,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, word := range words {
		norm := uktext.NormalizeWord(word)
		if norm == "" {
			continue
		}
		if _, err := stmt.Exec(norm, string(stage), now, now); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// SetTranslation sets the translation (and optional notes) for a word,
// creating a 'new' entry if the word is not yet in the vocabulary.
func SetTranslation(db *sql.DB, word, translation string, notes *string) error {
	now := time.Now().Unix()
	norm := uktext.NormalizeWord(word)

	_, err := db.Exec(`
		INSERT INTO words (word, translation, notes, stage, added_at, updated_at)
		VALUES (?, ?, ?, 'new', ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			translation = excluded.translation,
			notes = COALESCE(excluded.notes, notes),
			updated_at = excluded.updated_at
	`, norm, translation, toNullString(notes), now, now)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteWord removes a word from the vocabulary.
func DeleteWord(db *sql.DB, word string) error {
	norm := uktext.NormalizeWord(word)

	result, err := db.Exec(`DELETE FROM words WHERE word = ?`, norm)
	if err != nil {
		return errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound("word", norm)
	}
	return nil
}

// RecordTextRead bumps the read counter for a text and stamps last_read.
func RecordTextRead(db *sql.DB, textID string) error {
	now := time.Now().Unix()

	_, err := db.Exec(`
		INSERT INTO text_progress (text_id, last_read, times_read)
		VALUES (?, ?, 1)
		ON CONFLICT(text_id) DO UPDATE SET
			last_read = excluded.last_read,
			times_read = times_read + 1
	`, textID, now)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetTextProgress returns reading progress for a text, or nil if the text
// has never been read.
func GetTextProgress(db *sql.DB, textID string) (*TextProgress, error) {
	var p TextProgress
	err := db.QueryRow(`
		SELECT text_id, last_read, times_read
		FROM text_progress WHERE text_id = ?
	`, textID).Scan(&p.TextID, &p.LastRead, &p.TimesRead)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &p, nil
}

// VocabStats returns word counts keyed by stage. Stages with no words
// report zero.
func VocabStats(db *sql.DB) (map[uktext.Stage]int, error) {
	rows, err := db.Query(`SELECT stage, COUNT(*) FROM words GROUP BY stage`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	stats := map[uktext.Stage]int{
		uktext.StageNew:      0,
		uktext.StageLearning: 0,
		uktext.StageKnown:    0,
	}
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, errors.NewInternal(err)
		}
		stats[uktext.Stage(stage)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return stats, nil
}

// GetWordInfo returns cached dictionary info for a word or phrase, or ""
// if nothing is cached.
func GetWordInfo(db *sql.DB, wordOrPhrase string) (string, error) {
	key := cacheKey(wordOrPhrase)

	var content string
	err := db.QueryRow(`
		SELECT content FROM word_info_cache WHERE lookup_key = ?
	`, key).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return content, nil
}

// SaveWordInfo caches dictionary info for a word or phrase. infoType is
// "word" or "phrase".
func SaveWordInfo(db *sql.DB, wordOrPhrase, infoType, content string) error {
	now := time.Now().Unix()
	key := cacheKey(wordOrPhrase)

	_, err := db.Exec(`
		INSERT INTO word_info_cache (lookup_key, info_type, content, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(lookup_key) DO UPDATE SET
			info_type = excluded.info_type,
			content = excluded.content,
			created_at = excluded.created_at
	`, key, infoType, content, now)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ClearWordInfoCache drops all cached info and returns the number of
// entries removed.
func ClearWordInfoCache(db *sql.DB) (int, error) {
	result, err := db.Exec(`DELETE FROM word_info_cache`)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(affected), nil
}

// cacheKey normalizes a lookup phrase: lowercased, trimmed, inner
// whitespace collapsed. Multi-word phrases keep their spaces so word and
// phrase lookups stay distinct.
func cacheKey(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

func scanWord(row *sql.Row) (*Word, error) {
	var (
		w           Word
		translation sql.NullString
		notes       sql.NullString
		stage       string
	)
	err := row.Scan(&w.Word, &translation, &notes, &stage, &w.AddedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	w.Translation = fromNullString(translation)
	w.Notes = fromNullString(notes)
	w.Stage = uktext.Stage(stage)
	return &w, nil
}

func collectWords(rows *sql.Rows) ([]*Word, error) {
	var words []*Word
	for rows.Next() {
		var (
			w           Word
			translation sql.NullString
			notes       sql.NullString
			stage       string
		)
		if err := rows.Scan(&w.Word, &translation, &notes, &stage, &w.AddedAt, &w.UpdatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		w.Translation = fromNullString(translation)
		w.Notes = fromNullString(notes)
		w.Stage = uktext.Stage(stage)
		words = append(words, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return words, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
