// Package vocab manages the user's vocabulary on top of the database
// layer, caching the known and learning sets so annotation does not hit
// SQLite once per token.
package vocab

import (
	"database/sql"
	"sync"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/uktext"
)

// Manager wraps the words table with memoized stage sets. Safe for
// concurrent use; the web and MCP surfaces share one instance.
type Manager struct {
	db *sql.DB

	mu       sync.Mutex
	known    map[string]bool
	learning map[string]bool
}

// NewManager creates a Manager over an initialized database.
func NewManager(database *sql.DB) *Manager {
	return &Manager{db: database}
}

// invalidate drops the cached sets. Callers must hold mu.
func (m *Manager) invalidate() {
	m.known = nil
	m.learning = nil
}

// KnownWords returns the set of known words, loading it on first use.
func (m *Manager) KnownWords() (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.knownLocked()
}

// LearningWords returns the set of learning words, loading it on first use.
func (m *Manager) LearningWords() (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.learningLocked()
}

// Sets returns both stage sets in one call, in the shape uktext.Annotate
// consumes.
func (m *Manager) Sets() (known, learning map[string]bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	known, err = m.knownLocked()
	if err != nil {
		return nil, nil, err
	}
	learning, err = m.learningLocked()
	if err != nil {
		return nil, nil, err
	}
	return known, learning, nil
}

func (m *Manager) knownLocked() (map[string]bool, error) {
	if m.known == nil {
		set, err := db.StageSet(m.db, uktext.StageKnown)
		if err != nil {
			return nil, err
		}
		m.known = set
	}
	return m.known, nil
}

func (m *Manager) learningLocked() (map[string]bool, error) {
	if m.learning == nil {
		set, err := db.StageSet(m.db, uktext.StageLearning)
		if err != nil {
			return nil, err
		}
		m.learning = set
	}
	return m.learning, nil
}

// Stage returns the learning stage for a word, consulting the cached sets.
func (m *Manager) Stage(word string) (uktext.Stage, error) {
	norm := uktext.NormalizeWord(word)

	known, learning, err := m.Sets()
	if err != nil {
		return "", err
	}
	switch {
	case known[norm]:
		return uktext.StageKnown, nil
	case learning[norm]:
		return uktext.StageLearning, nil
	}
	return uktext.StageNew, nil
}

// Word returns the full vocabulary entry including translation.
func (m *Manager) Word(word string) (*db.Word, error) {
	return db.GetWord(m.db, word)
}

// SetStage sets the learning stage for a word and invalidates the caches.
func (m *Manager) SetStage(word string, stage uktext.Stage) error {
	if err := db.SetStage(m.db, word, stage); err != nil {
		return err
	}
	m.mu.Lock()
	m.invalidate()
	m.mu.Unlock()
	return nil
}

// BulkSetStage sets the stage for multiple words at once.
func (m *Manager) BulkSetStage(words []string, stage uktext.Stage) error {
	if err := db.BulkSetStage(m.db, words, stage); err != nil {
		return err
	}
	m.mu.Lock()
	m.invalidate()
	m.mu.Unlock()
	return nil
}

// MarkKnown marks a word as known.
func (m *Manager) MarkKnown(word string) error {
	return m.SetStage(word, uktext.StageKnown)
}

// MarkLearning marks a word as learning.
func (m *Manager) MarkLearning(word string) error {
	return m.SetStage(word, uktext.StageLearning)
}

// SetTranslation sets the translation (and optional notes) for a word.
func (m *Manager) SetTranslation(word, translation string, notes *string) error {
	return db.SetTranslation(m.db, word, translation, notes)
}

// AddWord stores a word with full details and invalidates the caches.
func (m *Manager) AddWord(w *db.Word) error {
	if err := db.SaveWord(m.db, w); err != nil {
		return err
	}
	m.mu.Lock()
	m.invalidate()
	m.mu.Unlock()
	return nil
}

// WordsByStage returns all words with a specific stage.
func (m *Manager) WordsByStage(stage uktext.Stage) ([]*db.Word, error) {
	return db.WordsByStage(m.db, stage)
}

// AllWords returns the full vocabulary.
func (m *Manager) AllWords() ([]*db.Word, error) {
	return db.AllWords(m.db)
}

// QuizWords returns up to count words for quizzing. Learning words come
// first; known words fill the remainder for review. Only words with
// translations qualify.
func (m *Manager) QuizWords(count int) ([]*db.Word, error) {
	learning, err := m.WordsByStage(uktext.StageLearning)
	if err != nil {
		return nil, err
	}
	known, err := m.WordsByStage(uktext.StageKnown)
	if err != nil {
		return nil, err
	}

	result := make([]*db.Word, 0, count)
	for _, w := range learning {
		if len(result) == count {
			break
		}
		if w.Translation != nil {
			result = append(result, w)
		}
	}
	for _, w := range known {
		if len(result) == count {
			break
		}
		if w.Translation != nil {
			result = append(result, w)
		}
	}
	return result, nil
}

// Stats returns word counts by stage.
func (m *Manager) Stats() (map[uktext.Stage]int, error) {
	return db.VocabStats(m.db)
}

// DeleteWord removes a word from the vocabulary.
func (m *Manager) DeleteWord(word string) error {
	if err := db.DeleteWord(m.db, word); err != nil {
		return err
	}
	m.mu.Lock()
	m.invalidate()
	m.mu.Unlock()
	return nil
}

// Annotate tokenizes text and tags each word token with its stage.
func (m *Manager) Annotate(text string) (uktext.AnnotatedText, error) {
	known, learning, err := m.Sets()
	if err != nil {
		return uktext.AnnotatedText{}, err
	}
	return uktext.Annotate(text, known, learning), nil
}
