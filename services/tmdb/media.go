package tmdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/p-stream/stremio-addon/services/providers"
)

// parsedID is a stremio media id split into its catalog reference. Stremio
// hands out either IMDB ids ("tt0111161" or "tt0944947:1:5") or TMDB ids
// ("tmdb:278" or "tmdb:1399:1:5").
type parsedID struct {
	imdb    bool
	id      string
	season  int
	episode int
}

func parseMovieID(id string) (*parsedID, error) {
	parts := strings.Split(id, ":")
	switch len(parts) {
	case 1:
		return &parsedID{imdb: true, id: parts[0]}, nil
	case 2:
		return &parsedID{id: parts[1]}, nil
	}
	return nil, errors.Errorf("malformed movie id %q", id)
}

func parseShowID(id string) (*parsedID, error) {
	parts := strings.Split(id, ":")
	var p *parsedID
	switch len(parts) {
	case 3:
		p = &parsedID{imdb: true, id: parts[0]}
	case 4:
		p = &parsedID{id: parts[1]}
		parts = parts[1:]
	default:
		return nil, errors.Errorf("malformed series id %q", id)
	}
	season, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed season in id %q", id)
	}
	episode, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed episode in id %q", id)
	}
	p.season = season
	p.episode = episode
	return p, nil
}

// yearOf extracts the year from a TMDB date ("2024-05-17").
func yearOf(date string) int {
	y, _ := strconv.Atoi(strings.SplitN(date, "-", 2)[0])
	return y
}

// GetMediaInfo resolves a stremio content type and media id into the media
// descriptor scrapers consume. Results are memoized per type+id.
func (api *Api) GetMediaInfo(ctx context.Context, contentType, id string) (*providers.Media, error) {
	return api.cache.Get(fmt.Sprintf("%v_%v", contentType, id), func() (*providers.Media, error) {
		if contentType == "series" {
			return api.getShowInfo(ctx, id)
		}
		return api.getMovieInfo(ctx, id)
	})
}

func (api *Api) getMovieInfo(ctx context.Context, id string) (*providers.Media, error) {
	p, err := parseMovieID(id)
	if err != nil {
		return nil, err
	}

	media := &providers.Media{Type: providers.MediaTypeMovie}
	if p.imdb {
		results, err := api.FindByIMDB(ctx, p.id)
		if err != nil {
			return nil, err
		}
		if len(results.MovieResults) == 0 {
			return nil, errors.Errorf("no tmdb movie record for %v", p.id)
		}
		m := results.MovieResults[0]
		media.IMDBID = p.id
		media.TMDBID = strconv.Itoa(m.ID)
		media.Title = m.OriginalTitle
		media.ReleaseYear = yearOf(m.ReleaseDate)
		return media, nil
	}

	tmdbID, err := strconv.Atoi(p.id)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed tmdb id %q", p.id)
	}
	details, err := api.GetMovieDetails(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	media.TMDBID = p.id
	media.Title = details.OriginalTitle
	media.ReleaseYear = yearOf(details.ReleaseDate)
	return media, nil
}

func (api *Api) getShowInfo(ctx context.Context, id string) (*providers.Media, error) {
	p, err := parseShowID(id)
	if err != nil {
		return nil, err
	}

	media := &providers.Media{Type: providers.MediaTypeShow}
	var tmdbID int
	if p.imdb {
		results, err := api.FindByIMDB(ctx, p.id)
		if err != nil {
			return nil, err
		}
		if len(results.TVResults) == 0 {
			return nil, errors.Errorf("no tmdb tv record for %v", p.id)
		}
		tv := results.TVResults[0]
		tmdbID = tv.ID
		media.IMDBID = p.id
		media.Title = tv.OriginalName
		media.ReleaseYear = yearOf(tv.FirstAirDate)
	} else {
		tmdbID, err = strconv.Atoi(p.id)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed tmdb id %q", p.id)
		}
		details, err := api.GetTVDetails(ctx, tmdbID)
		if err != nil {
			return nil, err
		}
		media.Title = details.OriginalName
		media.ReleaseYear = yearOf(details.FirstAirDate)
	}
	media.TMDBID = strconv.Itoa(tmdbID)

	season, err := api.GetSeasonDetails(ctx, tmdbID, p.season)
	if err != nil {
		return nil, err
	}
	if p.episode < 1 || p.episode > len(season.Episodes) {
		return nil, errors.Errorf("season %v of tmdb show %v has no episode %v", p.season, tmdbID, p.episode)
	}
	media.Season = &providers.Season{
		Number:       p.season,
		Title:        season.Name,
		TMDBID:       strconv.Itoa(season.ID),
		EpisodeCount: len(season.Episodes),
	}
	media.Episode = &providers.Episode{
		Number: p.episode,
		TMDBID: strconv.Itoa(season.Episodes[p.episode-1].ID),
	}
	return media, nil
}
