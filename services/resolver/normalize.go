package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/p-stream/stremio-addon/services/providers"
	"github.com/p-stream/stremio-addon/services/stremio"
)

// Normalizer converts provider streams into player-ready stremio stream items.
type Normalizer struct {
	expander  *PlaylistExpander
	overrides map[string]string
}

func NewNormalizer(expander *PlaylistExpander, overrides map[string]string) *Normalizer {
	return &Normalizer{
		expander:  expander,
		overrides: overrides,
	}
}

// Normalize converts one provider stream into zero or more stream items.
// ip-locked streams are dropped silently since no external player can reach
// them. File-based streams fan out per quality; playlist-based streams fan out
// per playlist variant. embedMeta is nil for direct source streams.
func (s *Normalizer) Normalize(ctx context.Context, stream *providers.Stream, embedMeta *providers.MetaOutput) ([]stremio.StreamItem, error) {
	if stream.HasFlag(providers.FlagIPLocked) {
		return nil, nil
	}

	switch stream.Type {
	case providers.StreamTypeFile:
		items := make([]stremio.StreamItem, 0, len(stream.Qualities))
		for _, q := range qualityKeys(stream.Qualities) {
			item := s.buildItem(stream, embedMeta, q)
			item.Url = stream.Qualities[q].URL
			items = append(items, item)
		}
		return items, nil
	case providers.StreamTypeHLS:
		variants, err := s.expander.Expand(ctx, stream.Playlist, s.mergedHeaders(stream))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to expand playlist of stream %v", stream.ID)
		}
		return lo.Map(variants, func(v Variant, _ int) stremio.StreamItem {
			item := s.buildItem(stream, embedMeta, v.Quality)
			item.Url = v.URL
			return item
		}), nil
	default:
		return nil, errors.Errorf("unsupported stream type %v", stream.Type)
	}
}

// buildItem fills every field shared by the file and playlist branches; the
// caller sets Url afterwards.
func (s *Normalizer) buildItem(stream *providers.Stream, embedMeta *providers.MetaOutput, quality providers.Quality) stremio.StreamItem {
	desc := stream.ID
	var embedID string
	if embedMeta != nil {
		desc = fmt.Sprintf("%v - %v", embedMeta.Name, desc)
		embedID = embedMeta.ID
	}
	if quality != "" {
		desc = fmt.Sprintf("%v (%v)", desc, quality)
	}

	return stremio.StreamItem{
		Description: desc,
		Subtitles: lo.Map(stream.Captions, func(c providers.Caption, _ int) stremio.Subtitle {
			return stremio.Subtitle{
				ID:   c.ID,
				URL:  c.URL,
				Lang: c.Language,
			}
		}),
		BehaviorHints: &stremio.StreamBehaviorHints{
			NotWebReady:  !stream.HasFlag(providers.FlagCORSAllowed) || len(stream.Headers) > 0,
			BingeGroup:   fmt.Sprintf("pstremio-%v-%v-%v", embedID, stream.ID, quality),
			ProxyHeaders: s.mergedHeaders(stream),
		},
	}
}

func (s *Normalizer) mergedHeaders(stream *providers.Stream) map[string]string {
	return MergeHeaders(s.overrides, stream.Headers, stream.PreferredHeaders)
}

// qualityKeys returns the stream's quality labels in canonical order so the
// fan-out is deterministic. Labels outside the canonical set sort last.
func qualityKeys(qualities map[providers.Quality]providers.StreamFile) []providers.Quality {
	seen := map[providers.Quality]bool{}
	keys := make([]providers.Quality, 0, len(qualities))
	for _, q := range providers.QualityOrder() {
		if _, ok := qualities[q]; ok {
			keys = append(keys, q)
			seen[q] = true
		}
	}
	var rest []providers.Quality
	for q := range qualities {
		if !seen[q] {
			rest = append(rest, q)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(keys, rest...)
}
