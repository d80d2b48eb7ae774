package web

import (
	"net/http"
	"strings"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	env      *ops.Env
	renderer *Renderer
}

// HandleTexts handles GET /texts: list stored texts with reading progress.
func (h *Handlers) HandleTexts(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListTexts(h.env)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "texts", TextsPageData{
		PageData: PageData{
			Title:   "Texts",
			Version: h.renderer.version,
			Nav:     "texts",
		},
		Items: result.Items,
	})
}

// HandleTextDetail handles GET /texts/{id}: the reading view with every
// word highlighted by stage. Reading a text records the read unless the
// peek parameter is set (used by refreshes).
func (h *Handlers) HandleTextDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("text ID is required"))
		return
	}

	result, err := ops.ReadText(h.env, ops.ReadTextInput{
		Identifier:   id,
		SkipProgress: parseBoolParam(r, "peek"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "text", TextDetailPageData{
		PageData: PageData{
			Title:   result.Text.Title,
			Version: h.renderer.version,
			Nav:     "texts",
		},
		Text:            result.Text,
		RenderedHTML:    renderAnnotatedLines(result.Lines),
		WordCount:       result.WordCount,
		KnownPercentage: result.KnownPercentage,
		UnknownWords:    result.UnknownWords,
	})
}

// HandleVocab handles GET /vocab: stage counts plus the word list,
// optionally filtered by stage.
func (h *Handlers) HandleVocab(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")

	stats, err := ops.VocabStats(h.env)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	words, err := ops.ListWords(h.env, ops.ListWordsInput{Stage: stage})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"stats": stats,
			"words": words.Words,
		})
		return
	}

	h.renderer.renderPage(w, r, "vocab", VocabPageData{
		PageData: PageData{
			Title:   "Vocabulary",
			Version: h.renderer.version,
			Nav:     "vocab",
		},
		Stats: stats,
		Words: words,
		Stage: stage,
	})
}

// HandleGrammarList handles GET /grammar: list grammar notes.
func (h *Handlers) HandleGrammarList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListGrammar(h.env)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "grammar", GrammarListPageData{
		PageData: PageData{
			Title:   "Grammar",
			Version: h.renderer.version,
			Nav:     "grammar",
		},
		Notes: result.Notes,
	})
}

// HandleGrammarDetail handles GET /grammar/{id}: a grammar note rendered
// from markdown.
func (h *Handlers) HandleGrammarDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("grammar note ID is required"))
		return
	}

	note, err := ops.GetGrammar(h.env, ops.GetGrammarInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, note)
		return
	}

	h.renderer.renderPage(w, r, "note", GrammarDetailPageData{
		PageData: PageData{
			Title:   note.Title,
			Version: h.renderer.version,
			Nav:     "grammar",
		},
		Note:         note,
		RenderedHTML: renderMarkdown(note.Content),
	})
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
