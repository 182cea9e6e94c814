package favorites

import (
	"testing"

	"github.com/mmcdole/flicks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Title: "The Dark Knight"},
		{ID: 2, Title: "Batman Begins"},
		{ID: 3, Title: "Alien"},
	}

	t.Run("Empty Query Keeps Order", func(t *testing.T) {
		got := Filter(movies, "")
		require.Len(t, got, 3)
		for i, m := range got {
			assert.Equal(t, movies[i], m.Movie)
			assert.Empty(t, m.MatchedIndexes)
		}
	})

	t.Run("Fuzzy Match", func(t *testing.T) {
		got := Filter(movies, "btmn")
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Movie.ID)
		assert.Len(t, got[0].MatchedIndexes, 4)
		assert.Equal(t, 0, got[0].MatchedIndexes[0])
	})

	t.Run("No Match", func(t *testing.T) {
		assert.Empty(t, Filter(movies, "zzz"))
	})
}
