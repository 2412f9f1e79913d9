package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"

	"github.com/p-stream/stremio-addon/services/providers"
)

const (
	tmdbApiHostFlag   = "tmdb-api-host"
	tmdbApiSecureFlag = "tmdb-api-secure"
	tmdbApiKeyFlag    = "tmdb-api-key"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   tmdbApiHostFlag,
			Usage:  "tmdb api host",
			EnvVar: "TMDB_API_HOST",
			Value:  "api.themoviedb.org",
		},
		cli.BoolTFlag{
			Name:   tmdbApiSecureFlag,
			Usage:  "tmdb api secure (https)",
			EnvVar: "TMDB_API_SECURE",
		},
		cli.StringFlag{
			Name:   tmdbApiKeyFlag,
			Usage:  "tmdb api read access token",
			Value:  "",
			EnvVar: "TMDB_API_KEY",
		},
	)
}

type MovieDetails struct {
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
}

type TVDetails struct {
	OriginalName string `json:"original_name"`
	FirstAirDate string `json:"first_air_date"`
}

type SeasonEpisode struct {
	ID int `json:"id"`
}

type SeasonDetails struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Episodes []SeasonEpisode `json:"episodes"`
}

type FindMovieResult struct {
	ID            int    `json:"id"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
}

type FindTVResult struct {
	ID           int    `json:"id"`
	OriginalName string `json:"original_name"`
	FirstAirDate string `json:"first_air_date"`
}

type FindResults struct {
	MovieResults []FindMovieResult `json:"movie_results"`
	TVResults    []FindTVResult    `json:"tv_results"`
}

// Api is a TMDB client. Lookups are memoized since titles and release years
// of a given id never change within a cache lifetime.
type Api struct {
	url   string
	key   string
	cl    *http.Client
	cache *lazymap.LazyMap[*providers.Media]
}

func New(c *cli.Context, cl *http.Client) *Api {
	host := c.String(tmdbApiHostFlag)
	secure := c.BoolT(tmdbApiSecureFlag)
	key := c.String(tmdbApiKeyFlag)
	if key == "" {
		return nil
	}
	protocol := "http"
	if secure {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v", protocol, host)
	log.Infof("tmdb api endpoint %v", u)
	return &Api{
		url: u,
		key: key,
		cl:  cl,
		cache: lazymap.New[*providers.Media](&lazymap.Config{
			Expire:      1 * time.Hour,
			ErrorExpire: 30 * time.Second,
		}),
	}
}

func (api *Api) GetMovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	var details MovieDetails
	if err := api.getJSON(ctx, fmt.Sprintf("/3/movie/%v", id), &details); err != nil {
		return nil, errors.Wrap(err, "failed to get movie details")
	}
	return &details, nil
}

func (api *Api) GetTVDetails(ctx context.Context, id int) (*TVDetails, error) {
	var details TVDetails
	if err := api.getJSON(ctx, fmt.Sprintf("/3/tv/%v", id), &details); err != nil {
		return nil, errors.Wrap(err, "failed to get tv details")
	}
	return &details, nil
}

func (api *Api) GetSeasonDetails(ctx context.Context, id int, season int) (*SeasonDetails, error) {
	var details SeasonDetails
	if err := api.getJSON(ctx, fmt.Sprintf("/3/tv/%v/season/%v", id, season), &details); err != nil {
		return nil, errors.Wrap(err, "failed to get season details")
	}
	return &details, nil
}

// FindByIMDB resolves an IMDB id into TMDB movie or tv records.
func (api *Api) FindByIMDB(ctx context.Context, imdbID string) (*FindResults, error) {
	var results FindResults
	path := fmt.Sprintf("/3/find/%v?external_source=imdb_id", imdbID)
	if err := api.getJSON(ctx, path, &results); err != nil {
		return nil, errors.Wrap(err, "failed to find by imdb id")
	}
	return &results, nil
}

func (api *Api) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", api.url+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+api.key)
	req.Header.Set("Accept", "application/json")
	q := req.URL.Query()
	q.Set("language", "en-US")
	req.URL.RawQuery = q.Encode()

	resp, err := api.cl.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("tmdb returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
