// Package content stores reading texts, word lists, and grammar notes as
// JSON files, one item per file, under the application base directory.
package content

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Text is a reading text.
type Text struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags,omitempty"`
	CreatedAt  int64    `json:"created_at"`
	Source     string   `json:"source"`
}

// NewText creates a text with a generated ULID, defaulting difficulty to
// "beginner" and source to "manual".
func NewText(title, content string) *Text {
	return &Text{
		ID:         NewID(),
		Title:      title,
		Content:    content,
		Difficulty: "beginner",
		CreatedAt:  time.Now().Unix(),
		Source:     "manual",
	}
}

// WordEntry is a word in a word list, with its translation.
type WordEntry struct {
	Word        string  `json:"word"`
	Translation string  `json:"translation"`
	Notes       *string `json:"notes,omitempty"`
}

// WordList is a themed list of words.
type WordList struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Theme     string      `json:"theme"`
	Words     []WordEntry `json:"words"`
	CreatedAt int64       `json:"created_at"`
}

// NewWordList creates a word list with a generated ULID.
func NewWordList(title, theme string) *WordList {
	if theme == "" {
		theme = "general"
	}
	return &WordList{
		ID:        NewID(),
		Title:     title,
		Theme:     theme,
		CreatedAt: time.Now().Unix(),
	}
}

// GrammarNote is a grammar explanation, stored as markdown.
type GrammarNote struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"created_at"`
}

// NewGrammarNote creates a grammar note with a generated ULID.
func NewGrammarNote(title, content string) *GrammarNote {
	return &GrammarNote{
		ID:        NewID(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}
}

// Summary is a content item's metadata for display in lists.
type Summary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// NewID generates a ULID string.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
