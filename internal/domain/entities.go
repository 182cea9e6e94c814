package domain

import (
	"fmt"
	"strings"
	"time"
)

// Movie is the minimal movie record shown in listings and stored as a favorite.
// An empty PosterPath stands for a missing poster.
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// Year returns the release year, or 0 when the date is missing or malformed
func (m Movie) Year() int {
	t, err := time.Parse(time.DateOnly, m.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}

// DisplayTitle returns "Title (Year)" when the year is known
func (m Movie) DisplayTitle() string {
	if y := m.Year(); y > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, y)
	}
	return m.Title
}

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category is a genre together with its top movies, derived per request
type Category struct {
	ID     int
	Name   string
	Movies []Movie
}

// Page is one page of a paginated catalog listing
type Page struct {
	Number       int
	Results      []Movie
	TotalPages   int
	TotalResults int
}

// HasMore reports whether pages remain after this one
func (p Page) HasMore() bool {
	return p.Number < p.TotalPages
}

// Company is a production company credited on a movie
type Company struct {
	ID            int
	Name          string
	OriginCountry string
}

// Language is a spoken language
type Language struct {
	Code        string
	Name        string
	EnglishName string
}

// MovieDetails holds the full catalog record of a movie
type MovieDetails struct {
	ID                  int
	Title               string
	Overview            string
	Tagline             string
	ReleaseDate         string
	Genres              []Genre
	PosterPath          string
	BackdropPath        string
	VoteAverage         float64
	Runtime             int // minutes
	Budget              int64
	Revenue             int64
	ProductionCompanies []Company
	Homepage            string
	SpokenLanguages     []Language
}

// Favorite projects the details onto the record persisted in favorites
func (d MovieDetails) Favorite() Movie {
	return Movie{
		ID:          d.ID,
		Title:       d.Title,
		PosterPath:  d.PosterPath,
		ReleaseDate: d.ReleaseDate,
	}
}

// FormattedRuntime returns the runtime as "2h 15m"
func (d MovieDetails) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	mins := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// GenreNames returns the genre names joined with ", "
func (d MovieDetails) GenreNames() string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

// FormatDate renders a catalog date (YYYY-MM-DD) as "Jan 02, 2006".
// Unparseable input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}

// FormatMoney renders an amount in dollars with thousands separators
func FormatMoney(amount int64) string {
	if amount <= 0 {
		return "-"
	}
	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	b.WriteByte('$')
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
