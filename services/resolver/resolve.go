package resolver

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/p-stream/stremio-addon/services/providers"
	"github.com/p-stream/stremio-addon/services/stremio"
)

// Resolver runs end-to-end stream resolution for one media request: direct
// source scrape first, embed fan-out when the source only yields embeds.
type Resolver struct {
	engine providers.Engine
	n      *Normalizer
}

func New(engine providers.Engine, n *Normalizer) *Resolver {
	return &Resolver{
		engine: engine,
		n:      n,
	}
}

// Resolve scrapes the source for the media and returns the flattened,
// normalized stream list. A not-found source outcome is a normal empty
// response; any other direct-scrape failure fails the whole request.
func (s *Resolver) Resolve(ctx context.Context, sourceID string, media *providers.Media) (*stremio.StreamsResponse, error) {
	out, err := s.engine.RunSourceScraper(ctx, sourceID, media)
	if err != nil {
		if errors.Is(err, providers.ErrNotFound) {
			return &stremio.StreamsResponse{Streams: []stremio.StreamItem{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to scrape source %v", sourceID)
	}

	if len(out.Streams) > 0 {
		items, err := s.normalizeAll(ctx, out.Streams, nil)
		if err != nil {
			return nil, err
		}
		return &stremio.StreamsResponse{Streams: items}, nil
	}

	return s.resolveEmbeds(ctx, out.Embeds)
}

// resolveEmbeds scrapes every embed concurrently and assembles contributions
// in embed-reference order regardless of completion order. One failed embed
// never fails the request: not-found contributes silently, anything else is
// logged and dropped.
func (s *Resolver) resolveEmbeds(ctx context.Context, embeds []providers.EmbedRef) (*stremio.StreamsResponse, error) {
	if len(embeds) == 0 {
		return &stremio.StreamsResponse{Streams: []stremio.StreamItem{}}, nil
	}

	type result struct {
		index int
		items []stremio.StreamItem
		err   error
	}

	results := make(chan result, len(embeds))
	var wg sync.WaitGroup

	for i, embed := range embeds {
		wg.Add(1)
		go func(index int, ref providers.EmbedRef) {
			defer wg.Done()
			items, err := s.resolveEmbed(ctx, ref)
			results <- result{
				index: index,
				items: items,
				err:   err,
			}
		}(i, embed)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([][]stremio.StreamItem, len(embeds))
	for res := range results {
		if res.err != nil {
			if !errors.Is(res.err, providers.ErrNotFound) {
				log.WithError(res.err).
					WithField("embed_id", embeds[res.index].EmbedID).
					Warn("embed scrape failed, dropping results")
			}
			continue
		}
		ordered[res.index] = res.items
	}

	return &stremio.StreamsResponse{Streams: lo.Flatten(ordered)}, nil
}

// resolveEmbed is the smallest unit that can fail independently: scrape plus
// normalization, carrying the embed's display metadata into the items.
func (s *Resolver) resolveEmbed(ctx context.Context, ref providers.EmbedRef) ([]stremio.StreamItem, error) {
	out, err := s.engine.RunEmbedScraper(ctx, ref.EmbedID, ref.URL)
	if err != nil {
		return nil, err
	}
	return s.normalizeAll(ctx, out.Streams, s.engine.GetMetadata(ref.EmbedID))
}

func (s *Resolver) normalizeAll(ctx context.Context, streams []*providers.Stream, embedMeta *providers.MetaOutput) ([]stremio.StreamItem, error) {
	groups := make([][]stremio.StreamItem, 0, len(streams))
	for _, stream := range streams {
		items, err := s.n.Normalize(ctx, stream, embedMeta)
		if err != nil {
			return nil, err
		}
		groups = append(groups, items)
	}
	return lo.Flatten(groups), nil
}
