package stremio

import (
	"context"
	"fmt"

	"github.com/p-stream/stremio-addon/services/providers"
)

const (
	addonVersion = "1.0.0"
	idPrefix     = "org.pstream"
)

// Manifest builds addon manifests: one index manifest describing the addon
// itself and one manifest per registered source.
type Manifest struct {
	engine providers.Engine
}

func NewManifest(engine providers.Engine) *Manifest {
	return &Manifest{
		engine: engine,
	}
}

// GetIndex returns the addon directory manifest. It exposes no resources of
// its own; installation happens per source.
func (s *Manifest) GetIndex(_ context.Context) *ManifestResponse {
	return &ManifestResponse{
		Id:          idPrefix,
		Version:     addonVersion,
		Name:        "P-Stream",
		Description: "Watch movies and shows scraped from the web by the P-Stream provider engine.",
		Types:       []string{"movie", "series"},
		Catalogs:    []CatalogItem{},
		Resources:   []string{},
		BehaviorHints: &BehaviorHints{
			Configurable:          true,
			ConfigurationRequired: true,
		},
	}
}

// GetSource returns the manifest for one source, or nil when the source id is
// not registered.
func (s *Manifest) GetSource(_ context.Context, sourceID string) *ManifestResponse {
	meta := s.engine.GetMetadata(sourceID)
	if meta == nil {
		return nil
	}
	return &ManifestResponse{
		Id:          fmt.Sprintf("%v.%v", idPrefix, meta.ID),
		Version:     addonVersion,
		Name:        fmt.Sprintf("P-Stream %v", meta.Name),
		Description: fmt.Sprintf("Watch movies and shows scraped from %v by the P-Stream provider engine.", meta.Name),
		Types:       manifestTypes(meta.MediaTypes),
		Catalogs:    []CatalogItem{},
		Resources:   []string{"stream"},
		IdPrefixes:  []string{"tt", "tmdb:"},
	}
}

// manifestTypes maps provider media types to stremio content types. Sources
// without declared media types are assumed to handle both.
func manifestTypes(mts []providers.MediaType) []string {
	if len(mts) == 0 {
		return []string{"movie", "series"}
	}
	types := make([]string, 0, len(mts))
	for _, mt := range mts {
		if mt == providers.MediaTypeShow {
			types = append(types, "series")
		} else {
			types = append(types, string(mt))
		}
	}
	return types
}
