package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/ops"
	"github.com/chytanka/chytanka/internal/uktext"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "texts", "vocab", "grammar"
}

// TextsPageData is the template data for the text list page.
type TextsPageData struct {
	PageData
	Items []ops.TextListItem
}

// TextDetailPageData is the template data for the reading page.
type TextDetailPageData struct {
	PageData
	Text            *content.Text
	RenderedHTML    template.HTML
	WordCount       int
	KnownPercentage float64
	UnknownWords    []string
}

// VocabPageData is the template data for the vocabulary page.
type VocabPageData struct {
	PageData
	Stats *ops.VocabStatsOutput
	Words *ops.ListWordsOutput
	Stage string
}

// GrammarListPageData is the template data for the grammar notes list.
type GrammarListPageData struct {
	PageData
	Notes []content.Summary
}

// GrammarDetailPageData is the template data for a single grammar note.
type GrammarDetailPageData struct {
	PageData
	Note         *content.GrammarNote
	RenderedHTML template.HTML
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"formatTime":    formatTime,
		"formatPercent": formatPercent,
		"deref":         deref,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"texts":   "texts.html",
		"text":    "text.html",
		"vocab":   "vocab.html",
		"grammar": "grammar.html",
		"note":    "note.html",
		"error":   "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and
// HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var appErr *errors.Error
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternal(err)
	}

	status := appErr.Status
	message := appErr.Message

	// JSON request
	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    string(appErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	// Full error page
	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", status),
			Version: r.version,
		},
		StatusCode: status,
		Message:    message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// renderAnnotatedLines builds the reading view: every word token becomes a
// stage-classed span, everything else is escaped verbatim, and each source
// line becomes one <p>. Concatenating the token texts reproduces the
// original line exactly.
func renderAnnotatedLines(lines [][]uktext.AnnotatedToken) template.HTML {
	var b strings.Builder
	for _, tokens := range lines {
		b.WriteString("<p class=\"line\">")
		for _, tok := range tokens {
			if tok.IsWord {
				fmt.Fprintf(&b, `<span class="stage-%s">%s</span>`,
					tok.Stage, template.HTMLEscapeString(tok.Text))
			} else {
				b.WriteString(template.HTMLEscapeString(tok.Text))
			}
		}
		b.WriteString("</p>\n")
	}
	return template.HTML(b.String())
}

// formatTime formats a Unix timestamp as "2006-01-02 15:04" UTC. Zero
// renders as a dash for never-read texts.
func formatTime(unix int64) string {
	if unix == 0 {
		return "—"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

// formatPercent formats a coverage percentage with one decimal place.
func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// deref dereferences an optional string, returning "" if nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
