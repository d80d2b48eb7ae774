package content

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/errors"
)

// TranslationSetter records a translation for a vocabulary word. Satisfied
// by vocab.Manager.
type TranslationSetter interface {
	SetTranslation(word, translation string, notes *string) error
}

// Manager is the unified store for texts, word lists, and grammar notes.
// Reading progress lives in the database; everything else is JSON files.
type Manager struct {
	texts     *store[Text]
	wordlists *store[WordList]
	grammar   *store[GrammarNote]
	db        *sql.DB
}

// NewManager creates a Manager with content directories under baseDir
// (texts/, wordlists/, grammar/).
func NewManager(baseDir string, database *sql.DB) (*Manager, error) {
	texts, err := newStore(filepath.Join(baseDir, "texts"), func(t *Text) int64 { return t.CreatedAt })
	if err != nil {
		return nil, err
	}
	wordlists, err := newStore(filepath.Join(baseDir, "wordlists"), func(w *WordList) int64 { return w.CreatedAt })
	if err != nil {
		return nil, err
	}
	grammar, err := newStore(filepath.Join(baseDir, "grammar"), func(g *GrammarNote) int64 { return g.CreatedAt })
	if err != nil {
		return nil, err
	}
	return &Manager{texts: texts, wordlists: wordlists, grammar: grammar, db: database}, nil
}

// Text operations

// ListTexts returns summaries of all texts, newest first.
func (m *Manager) ListTexts() ([]Summary, error) {
	texts, err := m.texts.listAll()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	summaries := make([]Summary, 0, len(texts))
	for _, t := range texts {
		summaries = append(summaries, Summary{ID: t.ID, Title: t.Title, Subtitle: t.Difficulty})
	}
	return summaries, nil
}

// GetText returns a text by ID.
func (m *Manager) GetText(id string) (*Text, error) {
	t, err := m.texts.get(id)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if t == nil {
		return nil, errors.NewNotFound("text", id)
	}
	return t, nil
}

// FindText resolves a text by ID or by exact title (case-insensitive).
func (m *Manager) FindText(identifier string) (*Text, error) {
	if m.texts.exists(identifier) {
		return m.GetText(identifier)
	}
	texts, err := m.texts.listAll()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	for _, t := range texts {
		if strings.EqualFold(t.Title, identifier) {
			return t, nil
		}
	}
	return nil, errors.NewNotFound("text", identifier)
}

// SaveText writes a text to disk.
func (m *Manager) SaveText(t *Text) error {
	if err := m.texts.save(t.ID, t); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteText removes a text.
func (m *Manager) DeleteText(id string) error {
	ok, err := m.texts.delete(id)
	if err != nil {
		return errors.NewInternal(err)
	}
	if !ok {
		return errors.NewNotFound("text", id)
	}
	return nil
}

// RecordTextRead bumps the read counter for a text.
func (m *Manager) RecordTextRead(textID string) error {
	return db.RecordTextRead(m.db, textID)
}

// TextProgress returns reading progress for a text, or nil if unread.
func (m *Manager) TextProgress(textID string) (*db.TextProgress, error) {
	return db.GetTextProgress(m.db, textID)
}

// Word list operations

// ListWordLists returns summaries of all word lists, newest first.
func (m *Manager) ListWordLists() ([]Summary, error) {
	lists, err := m.wordlists.listAll()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	summaries := make([]Summary, 0, len(lists))
	for _, w := range lists {
		subtitle := fmt.Sprintf("%s (%d words)", w.Theme, len(w.Words))
		summaries = append(summaries, Summary{ID: w.ID, Title: w.Title, Subtitle: subtitle})
	}
	return summaries, nil
}

// GetWordList returns a word list by ID.
func (m *Manager) GetWordList(id string) (*WordList, error) {
	w, err := m.wordlists.get(id)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if w == nil {
		return nil, errors.NewNotFound("wordlist", id)
	}
	return w, nil
}

// SaveWordList writes a word list to disk.
func (m *Manager) SaveWordList(w *WordList) error {
	if err := m.wordlists.save(w.ID, w); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteWordList removes a word list.
func (m *Manager) DeleteWordList(id string) error {
	ok, err := m.wordlists.delete(id)
	if err != nil {
		return errors.NewInternal(err)
	}
	if !ok {
		return errors.NewNotFound("wordlist", id)
	}
	return nil
}

// AddWordToList appends a word to an existing list. Adding a word that is
// already present (case-insensitive) fails with ALREADY_EXISTS.
func (m *Manager) AddWordToList(listID, word, translation string, notes *string) error {
	w, err := m.GetWordList(listID)
	if err != nil {
		return err
	}
	for _, entry := range w.Words {
		if strings.EqualFold(entry.Word, word) {
			return errors.NewAlreadyExists("word", word)
		}
	}
	w.Words = append(w.Words, WordEntry{Word: word, Translation: translation, Notes: notes})
	return m.SaveWordList(w)
}

// ImportWordList copies every entry of a word list into the vocabulary.
// Returns the number of words imported.
func (m *Manager) ImportWordList(listID string, vocab TranslationSetter) (int, error) {
	w, err := m.GetWordList(listID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range w.Words {
		if err := vocab.SetTranslation(entry.Word, entry.Translation, entry.Notes); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// LookupTranslation searches all word lists for a word and returns its
// translation, or "" if no list contains it.
func (m *Manager) LookupTranslation(word string) (string, error) {
	lists, err := m.wordlists.listAll()
	if err != nil {
		return "", errors.NewInternal(err)
	}
	for _, w := range lists {
		for _, entry := range w.Words {
			if strings.EqualFold(entry.Word, word) {
				return entry.Translation, nil
			}
		}
	}
	return "", nil
}

// Grammar operations

// ListGrammar returns summaries of all grammar notes, newest first.
func (m *Manager) ListGrammar() ([]Summary, error) {
	notes, err := m.grammar.listAll()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	summaries := make([]Summary, 0, len(notes))
	for _, g := range notes {
		subtitle := "no tags"
		if len(g.Tags) > 0 {
			tags := g.Tags
			if len(tags) > 3 {
				tags = tags[:3]
			}
			subtitle = strings.Join(tags, ", ")
		}
		summaries = append(summaries, Summary{ID: g.ID, Title: g.Title, Subtitle: subtitle})
	}
	return summaries, nil
}

// GetGrammar returns a grammar note by ID.
func (m *Manager) GetGrammar(id string) (*GrammarNote, error) {
	g, err := m.grammar.get(id)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if g == nil {
		return nil, errors.NewNotFound("grammar note", id)
	}
	return g, nil
}

// SaveGrammar writes a grammar note to disk.
func (m *Manager) SaveGrammar(g *GrammarNote) error {
	if err := m.grammar.save(g.ID, g); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteGrammar removes a grammar note.
func (m *Manager) DeleteGrammar(id string) error {
	ok, err := m.grammar.delete(id)
	if err != nil {
		return errors.NewInternal(err)
	}
	if !ok {
		return errors.NewNotFound("grammar note", id)
	}
	return nil
}
