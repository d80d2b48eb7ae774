package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/chytanka/chytanka/internal/content"
)

// Generator builds learning content from provider responses.
type Generator struct {
	provider Provider
}

// NewGenerator creates a Generator over a provider.
func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider}
}

// ProviderName returns the name of the underlying provider.
func (g *Generator) ProviderName() string {
	return g.provider.Name()
}

var lengthWords = map[string]string{
	"short":  "about 50",
	"medium": "about 150",
	"long":   "about 300",
}

var difficultyGuidance = map[string]string{
	"beginner":     "Use simple sentences, common vocabulary, present tense mainly.",
	"intermediate": "Use varied sentence structures, past and future tenses, common idioms.",
	"advanced":     "Use complex sentences, advanced vocabulary, all tenses, idiomatic expressions.",
}

// GenerateText creates a reading text on a topic. length is "short",
// "medium", or "long"; difficulty is "beginner", "intermediate", or
// "advanced".
func (g *Generator) GenerateText(ctx context.Context, topic, difficulty, length string) (*content.Text, error) {
	wordCount, ok := lengthWords[length]
	if !ok {
		wordCount = "about 100"
	}
	guidance, ok := difficultyGuidance[difficulty]
	if !ok {
		difficulty = "beginner"
		guidance = difficultyGuidance["beginner"]
	}

	prompt := fmt.Sprintf(`Create a Ukrainian reading text about: %s

Requirements:
- Length: %s words
- Difficulty: %s
- %s

Format your response as:
TITLE: [A short Ukrainian title]
---
[The Ukrainian text content]

Do not include translations or explanations.`, topic, wordCount, difficulty, guidance)

	response, err := g.provider.Generate(ctx, prompt, systemPrompt, 2000)
	if err != nil {
		return nil, err
	}

	title, body := parseTitledResponse(response, topic)

	text := content.NewText(title, body)
	text.Difficulty = difficulty
	text.Tags = []string{strings.ToLower(topic)}
	text.Source = "ai_generated"
	return text, nil
}

// parseTitledResponse splits a "TITLE: ...\n---\n..." response. The topic
// serves as the fallback title when the model ignores the format.
func parseTitledResponse(response, fallbackTitle string) (title, body string) {
	title = fallbackTitle
	body = response

	if strings.Contains(response, "TITLE:") && strings.Contains(response, "---") {
		parts := strings.SplitN(response, "---", 2)
		titleLine := strings.TrimSpace(strings.ReplaceAll(parts[0], "TITLE:", ""))
		if titleLine != "" {
			title = titleLine
		}
		if len(parts) > 1 {
			body = strings.TrimSpace(parts[1])
		}
	}
	return title, body
}

// GenerateWordList creates a themed word list with count entries.
func (g *Generator) GenerateWordList(ctx context.Context, theme string, count int) (*content.WordList, error) {
	prompt := fmt.Sprintf(`Create a list of %d Ukrainian words for the theme: %s

Format each word as:
WORD | TRANSLATION | NOTES

Where:
- WORD is the Ukrainian word
- TRANSLATION is the English translation
- NOTES is optional grammatical info (part of speech, gender for nouns, etc.)

Example:
привіт | hello | greeting, informal
дякую | thank you | verb, expression of gratitude

List %d words, one per line:`, count, theme, count)

	response, err := g.provider.Generate(ctx, prompt, systemPrompt, 3000)
	if err != nil {
		return nil, err
	}

	list := content.NewWordList(titleCase(theme)+" Vocabulary", strings.ToLower(theme))
	list.Words = parseWordLines(response)
	return list, nil
}

// parseWordLines extracts WORD | TRANSLATION | NOTES entries, skipping
// blank lines, comments, and lines without a translation.
func parseWordLines(response string) []content.WordEntry {
	var words []content.WordEntry
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		entry := content.WordEntry{
			Word:        strings.Trim(strings.TrimSpace(parts[0]), "- "),
			Translation: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			notes := strings.TrimSpace(parts[2])
			if notes != "" {
				entry.Notes = &notes
			}
		}
		if entry.Word == "" || entry.Translation == "" {
			continue
		}
		words = append(words, entry)
	}
	return words
}

// GenerateGrammarNote creates a grammar explanation for a topic.
func (g *Generator) GenerateGrammarNote(ctx context.Context, topic string) (*content.GrammarNote, error) {
	prompt := fmt.Sprintf(`Explain this Ukrainian grammar topic for English speakers: %s

Include:
1. Clear explanation of the concept
2. When/how it's used
3. Examples with Ukrainian text and English translations
4. Common patterns or rules
5. Common mistakes to avoid

Format the explanation clearly with sections.
Use Ukrainian examples with translations in parentheses.`, topic)

	response, err := g.provider.Generate(ctx, prompt, systemPrompt, 3000)
	if err != nil {
		return nil, err
	}

	note := content.NewGrammarNote(titleCase(topic), response)
	for _, word := range strings.Fields(topic) {
		if len(word) > 3 {
			note.Tags = append(note.Tags, strings.ToLower(word))
		}
	}
	return note, nil
}

// ExplainWord returns an explanation of a word, optionally in the context
// of the sentence it appeared in.
func (g *Generator) ExplainWord(ctx context.Context, word, sentence string) (string, error) {
	contextText := ""
	if sentence != "" {
		contextText = fmt.Sprintf("\nContext: %q", sentence)
	}

	prompt := fmt.Sprintf(`Explain this Ukrainian word: %s%s

Provide:
1. Translation(s) to English
2. Part of speech
3. For nouns: gender and example declensions
4. For verbs: aspect and example conjugations
5. Example sentence with translation
6. Related words or expressions`, word, contextText)

	return g.provider.Generate(ctx, prompt, systemPrompt, 1000)
}

// TranslateWord returns a bare translation for a word.
func (g *Generator) TranslateWord(ctx context.Context, word string) (string, error) {
	prompt := fmt.Sprintf("Translate this Ukrainian word to English. Reply with ONLY the translation, nothing else: %s", word)

	response, err := g.provider.Generate(ctx, prompt, systemPrompt, 50)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// WordInfo returns detailed dictionary-style information about a word.
func (g *Generator) WordInfo(ctx context.Context, word, sentence string) (string, error) {
	contextText := ""
	if sentence != "" {
		contextText = fmt.Sprintf("\nContext: %q", sentence)
	}

	prompt := fmt.Sprintf(`Provide detailed information about this Ukrainian word: %s%s

Format your response exactly like this:

WORD: %s
PRONUNCIATION: [phonetic guide for English speakers]
PART OF SPEECH: [noun/verb/adjective/etc.]
GENDER: [for nouns: masculine/feminine/neuter, otherwise N/A]
ASPECT: [for verbs: imperfective/perfective, otherwise N/A]

DEFINITIONS:
1. [primary meaning]
2. [secondary meaning if any]

EXAMPLES:
• [Ukrainian sentence] — [English translation]
• [Ukrainian sentence] — [English translation]

RELATED WORDS:
• [related word 1] — [translation]
• [related word 2] — [translation]

NOTES:
[Any irregularities, common mistakes, or usage tips]`, word, contextText, word)

	return g.provider.Generate(ctx, prompt, systemPrompt, 1500)
}

// PhraseInfo returns detailed information about a multi-word phrase.
func (g *Generator) PhraseInfo(ctx context.Context, phrase, sentence string) (string, error) {
	contextText := ""
	if sentence != "" {
		contextText = fmt.Sprintf("\nContext: %q", sentence)
	}

	prompt := fmt.Sprintf(`Provide detailed information about this Ukrainian phrase: %s%s

Format your response exactly like this:

PHRASE: %s
LITERAL MEANING: [word-by-word translation]
ACTUAL MEANING: [what it really means]

TYPE: [idiom/expression/collocation/compound verb/etc.]
REGISTER: [formal/informal/neutral/slang]

USAGE:
[When and how to use this phrase]

EXAMPLES:
• [Ukrainian sentence using the phrase] — [English translation]
• [Ukrainian sentence using the phrase] — [English translation]

RELATED EXPRESSIONS:
• [similar phrase 1] — [translation]
• [similar phrase 2] — [translation]

NOTES:
[Cultural context, common mistakes, or tips]`, phrase, contextText, phrase)

	return g.provider.Generate(ctx, prompt, systemPrompt, 1500)
}

// AnalyzeVocabulary groups the inflected forms from a text under their
// dictionary lemmas with translations.
func (g *Generator) AnalyzeVocabulary(ctx context.Context, words []string) (string, error) {
	prompt := fmt.Sprintf(`Analyze this list of Ukrainian words from a text. Group inflected forms under their dictionary form (lemma).

Words: %s

For each unique lemma, provide:
1. The dictionary form (lemma)
2. English translation
3. Part of speech
4. Which inflected forms from the list belong to this lemma

Format your response EXACTLY like this, one entry per line:
LEMMA | translation | part of speech | forms: form1, form2, ...

Example:
кіт | cat | noun (m) | forms: кота, коти, коту, котів
бути | to be | verb | forms: є, був, була, буде
великий | big, large | adjective | forms: великий, велика, великого

Rules:
- List lemmas alphabetically
- For nouns, indicate gender: (m), (f), (n)
- For verbs, give infinitive as lemma
- Group ALL inflected forms under their lemma
- Include common words like prepositions, conjunctions
- Be thorough - every word from the input should appear under some lemma

Analyze ALL %d words:`, strings.Join(words, ", "), len(words))

	return g.provider.Generate(ctx, prompt, systemPrompt, 4000)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(f)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
