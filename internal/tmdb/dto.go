package tmdb

// pageResponse is the envelope of every paginated TMDB listing
// (/search/movie, /discover/movie)
type pageResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// movieResult is a movie entry inside a listing
type movieResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
}

// genreListResponse is returned by /genre/movie/list
type genreListResponse struct {
	Genres []genre `json:"genres"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// movieDetailsResponse is returned by /movie/{id}
type movieDetailsResponse struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	Overview            string              `json:"overview"`
	Tagline             string              `json:"tagline"`
	ReleaseDate         string              `json:"release_date"`
	Genres              []genre             `json:"genres"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	VoteAverage         float64             `json:"vote_average"`
	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	ProductionCompanies []productionCompany `json:"production_companies"`
	Homepage            string              `json:"homepage"`
	SpokenLanguages     []spokenLanguage    `json:"spoken_languages"`
}

type productionCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country"`
}

type spokenLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}
