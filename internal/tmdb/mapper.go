package tmdb

import "github.com/mmcdole/flicks/internal/domain"

// mapPage converts a listing envelope to a domain page
func mapPage(resp pageResponse) domain.Page {
	return domain.Page{
		Number:       resp.Page,
		Results:      mapMovies(resp.Results),
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
}

// mapMovies keeps the upstream order and does not deduplicate
func mapMovies(results []movieResult) []domain.Movie {
	movies := make([]domain.Movie, len(results))
	for i, r := range results {
		movies[i] = domain.Movie{
			ID:          r.ID,
			Title:       r.Title,
			PosterPath:  r.PosterPath,
			ReleaseDate: r.ReleaseDate,
		}
	}
	return movies
}

func mapGenres(genres []genre) []domain.Genre {
	out := make([]domain.Genre, len(genres))
	for i, g := range genres {
		out[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return out
}

func mapDetails(d movieDetailsResponse) domain.MovieDetails {
	companies := make([]domain.Company, len(d.ProductionCompanies))
	for i, c := range d.ProductionCompanies {
		companies[i] = domain.Company{ID: c.ID, Name: c.Name, OriginCountry: c.OriginCountry}
	}

	languages := make([]domain.Language, len(d.SpokenLanguages))
	for i, l := range d.SpokenLanguages {
		languages[i] = domain.Language{Code: l.ISO6391, Name: l.Name, EnglishName: l.EnglishName}
	}

	return domain.MovieDetails{
		ID:                  d.ID,
		Title:               d.Title,
		Overview:            d.Overview,
		Tagline:             d.Tagline,
		ReleaseDate:         d.ReleaseDate,
		Genres:              mapGenres(d.Genres),
		PosterPath:          d.PosterPath,
		BackdropPath:        d.BackdropPath,
		VoteAverage:         d.VoteAverage,
		Runtime:             d.Runtime,
		Budget:              d.Budget,
		Revenue:             d.Revenue,
		ProductionCompanies: companies,
		Homepage:            d.Homepage,
		SpokenLanguages:     languages,
	}
}
