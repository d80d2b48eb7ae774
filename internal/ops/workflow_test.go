package ops

import (
	"testing"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
	"github.com/stretchr/testify/require"
)

// TestFullWorkflow exercises a complete study session:
// add text → read → mark words → stats improve → quiz → delete
func TestFullWorkflow(t *testing.T) {
	env := testEnv(t)

	// 1. Add a text
	addOut, err := AddText(env, AddTextInput{Title: "Кіт", Content: sampleText})
	require.NoError(t, err)
	require.NotEmpty(t, addOut.ID)
	id := addOut.ID

	// 2. First read: everything is unknown
	readOut, err := ReadText(env, ReadTextInput{Identifier: id})
	require.NoError(t, err)
	require.Equal(t, 0.0, readOut.KnownPercentage)
	require.Len(t, readOut.UnknownWords, 7)

	// 3. Mark the unknown words as learning
	markOut, err := MarkWords(env, MarkWordsInput{Words: readOut.UnknownWords, Stage: "learning"})
	require.NoError(t, err)
	require.Equal(t, 7, markOut.Count)

	// 4. Nothing unknown remains, but learning words are not yet known
	statsOut, err := TextStats(env, TextStatsInput{Identifier: id})
	require.NoError(t, err)
	require.Equal(t, 0.0, statsOut.KnownPercentage)
	require.Empty(t, statsOut.UnknownWords)

	// 5. Promote one word with a translation; coverage moves with it
	setOut, err := SetWord(env, SetWordInput{Word: "кіт", Stage: "known", Translation: "cat"})
	require.NoError(t, err)
	require.Equal(t, uktext.StageKnown, setOut.Stage)

	statsOut, err = TextStats(env, TextStatsInput{Identifier: id})
	require.NoError(t, err)
	require.Equal(t, 12.5, statsOut.KnownPercentage)

	vocabOut, err := VocabStats(env)
	require.NoError(t, err)
	require.Equal(t, 1, vocabOut.Known)
	require.Equal(t, 6, vocabOut.Learning)

	// 6. Quiz only offers words with translations
	quizOut, err := Quiz(env, QuizInput{Count: 10})
	require.NoError(t, err)
	require.Len(t, quizOut.Words, 1)
	require.Equal(t, "кіт", quizOut.Words[0].Word)

	// 7. Delete the text; vocabulary survives
	_, err = DeleteText(env, DeleteTextInput{Identifier: id})
	require.NoError(t, err)

	_, err = GetText(env, GetTextInput{Identifier: id})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	vocabOut, err = VocabStats(env)
	require.NoError(t, err)
	require.Equal(t, 7, vocabOut.Total)
}
