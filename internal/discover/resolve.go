package discover

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/flicks/internal/domain"
)

// ResolveGenre finds the genre a user meant by name. An exact
// case-insensitive match wins; otherwise the closest fuzzy match is taken.
func ResolveGenre(genres []domain.Genre, name string) (domain.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Genre{}, fmt.Errorf("%w: empty name", domain.ErrGenreNotFound)
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
		names[i] = g.Name
	}

	matches := fuzzy.RankFindFold(name, names)
	if len(matches) == 0 {
		return domain.Genre{}, fmt.Errorf("%w: %q", domain.ErrGenreNotFound, name)
	}

	// Lower distance is closer; ties keep catalog order
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})
	return genres[matches[0].OriginalIndex], nil
}
