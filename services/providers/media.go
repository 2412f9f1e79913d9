package providers

// Season identifies a show season within its TMDB record.
type Season struct {
	Number       int    `json:"number"`
	Title        string `json:"title,omitempty"`
	TMDBID       string `json:"tmdbId"`
	EpisodeCount int    `json:"episodeCount"`
}

// Episode identifies a single episode within a season.
type Episode struct {
	Number int    `json:"number"`
	TMDBID string `json:"tmdbId"`
}

// Media is the resolved descriptor a scraper receives for one request. For
// movies Season and Episode are nil.
type Media struct {
	Type        MediaType `json:"type"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"releaseYear"`
	IMDBID      string    `json:"imdbId,omitempty"`
	TMDBID      string    `json:"tmdbId"`
	Season      *Season   `json:"season,omitempty"`
	Episode     *Episode  `json:"episode,omitempty"`
}
