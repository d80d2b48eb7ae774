package ops

import (
	"fmt"
	"sort"

	"github.com/chytanka/chytanka/internal/errors"
)

// DefaultRecentLimit caps RecentTexts output when no limit is given.
const DefaultRecentLimit = 5

// RecentTextsInput contains parameters for the RecentTexts operation.
type RecentTextsInput struct {
	// Limit is the maximum number of texts to return. Zero means the default.
	Limit int
}

// RecentTextsOutput contains recently read texts, most recent first.
type RecentTextsOutput struct {
	Items []TextListItem `json:"items"`
}

// RecentTexts returns texts that have been read at least once, ordered by
// last read time descending.
func RecentTexts(env *Env, input RecentTextsInput) (*RecentTextsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("limit must be positive, got %d", limit))
	}

	summaries, err := env.Content.ListTexts()
	if err != nil {
		return nil, err
	}

	items := make([]TextListItem, 0, len(summaries))
	for _, s := range summaries {
		progress, err := env.Content.TextProgress(s.ID)
		if err != nil {
			return nil, err
		}
		if progress == nil {
			continue
		}
		items = append(items, TextListItem{
			Summary:   s,
			TimesRead: progress.TimesRead,
			LastRead:  progress.LastRead,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].LastRead > items[j].LastRead })
	if len(items) > limit {
		items = items[:limit]
	}
	return &RecentTextsOutput{Items: items}, nil
}
