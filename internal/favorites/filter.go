package favorites

import (
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Match is a favorite that matched a filter query
type Match struct {
	Movie          domain.Movie
	MatchedIndexes []int // Byte positions in the title, for highlighting
	Score          int
}

// titleSource implements fuzzy.Source over movie titles
type titleSource []domain.Movie

func (t titleSource) String(i int) string { return t[i].Title }
func (t titleSource) Len() int            { return len(t) }

// Filter fuzzy-matches query against movie titles, best match first.
// An empty query matches every movie in its original order.
func Filter(movies []domain.Movie, query string) []Match {
	if query == "" {
		out := make([]Match, len(movies))
		for i, m := range movies {
			out[i] = Match{Movie: m}
		}
		return out
	}

	found := fuzzy.FindFrom(query, titleSource(movies))
	out := make([]Match, len(found))
	for i, f := range found {
		out[i] = Match{
			Movie:          movies[f.Index],
			MatchedIndexes: f.MatchedIndexes,
			Score:          f.Score,
		}
	}
	return out
}
