package providers

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound signals that a source or embed has nothing for the given media.
// It is an expected outcome, not a failure; callers detect it with errors.Is.
var ErrNotFound = errors.New("not found")

// Engine resolves a media descriptor into streams or embed references via
// registered scrapers.
type Engine interface {
	// RunSourceScraper scrapes the given source for the media. The output
	// carries either direct streams or embed references, never both.
	RunSourceScraper(ctx context.Context, sourceID string, media *Media) (*SourceOutput, error)
	// RunEmbedScraper scrapes a secondary embed target at the given URL.
	RunEmbedScraper(ctx context.Context, embedID, url string) (*EmbedOutput, error)
	// GetMetadata returns display metadata for a source or embed id, or nil
	// when the id is not registered.
	GetMetadata(id string) *MetaOutput
	// ListSources returns metadata of all registered sources in registration order.
	ListSources() []*MetaOutput
}

// SourceScrapeFunc resolves a media descriptor into a source scrape output.
type SourceScrapeFunc func(ctx context.Context, media *Media) (*SourceOutput, error)

// EmbedScrapeFunc resolves an embed page URL into an embed scrape output.
type EmbedScrapeFunc func(ctx context.Context, url string) (*EmbedOutput, error)

// Source is a registered top-level scraper.
type Source struct {
	Meta   MetaOutput
	Scrape SourceScrapeFunc
}

// Embed is a registered secondary scraper.
type Embed struct {
	Meta   MetaOutput
	Scrape EmbedScrapeFunc
}

// Registry is the default Engine implementation. Scrapers register once at
// startup; lookups afterwards are read-only, so no locking is needed.
type Registry struct {
	sources     map[string]*Source
	sourceOrder []string
	embeds      map[string]*Embed
}

var _ Engine = (*Registry)(nil)

// NewRegistry creates an empty scraper registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: map[string]*Source{},
		embeds:  map[string]*Embed{},
	}
}

// RegisterSource adds a source scraper. Registering the same id twice
// replaces the previous scraper but keeps its position.
func (s *Registry) RegisterSource(src *Source) {
	if _, ok := s.sources[src.Meta.ID]; !ok {
		s.sourceOrder = append(s.sourceOrder, src.Meta.ID)
	}
	s.sources[src.Meta.ID] = src
}

// RegisterEmbed adds an embed scraper.
func (s *Registry) RegisterEmbed(emb *Embed) {
	s.embeds[emb.Meta.ID] = emb
}

func (s *Registry) RunSourceScraper(ctx context.Context, sourceID string, media *Media) (*SourceOutput, error) {
	src, ok := s.sources[sourceID]
	if !ok {
		return nil, errors.Errorf("source %v is not registered", sourceID)
	}
	out, err := src.Scrape(ctx, media)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Registry) RunEmbedScraper(ctx context.Context, embedID, url string) (*EmbedOutput, error) {
	emb, ok := s.embeds[embedID]
	if !ok {
		return nil, errors.Errorf("embed %v is not registered", embedID)
	}
	out, err := emb.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Registry) GetMetadata(id string) *MetaOutput {
	if src, ok := s.sources[id]; ok {
		m := src.Meta
		return &m
	}
	if emb, ok := s.embeds[id]; ok {
		m := emb.Meta
		return &m
	}
	return nil
}

func (s *Registry) ListSources() []*MetaOutput {
	metas := make([]*MetaOutput, 0, len(s.sourceOrder))
	for _, id := range s.sourceOrder {
		m := s.sources[id].Meta
		metas = append(metas, &m)
	}
	return metas
}
