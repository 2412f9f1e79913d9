package stremio

// Subtitle is one subtitle track attached to a stream item.
type Subtitle struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// StreamBehaviorHints represents behavior hints specific to stream items
type StreamBehaviorHints struct {
	NotWebReady  bool              `json:"notWebReady,omitempty"`
	BingeGroup   string            `json:"bingeGroup,omitempty"`
	ProxyHeaders map[string]string `json:"proxyHeaders,omitempty"`
}

type StreamItem struct {
	Name          string               `json:"name,omitempty"`
	Description   string               `json:"description,omitempty"`
	Url           string               `json:"url,omitempty"`
	Subtitles     []Subtitle           `json:"subtitles,omitempty"`
	BehaviorHints *StreamBehaviorHints `json:"behaviorHints,omitempty"`
}

type StreamsResponse struct {
	Streams []StreamItem `json:"streams"`
}

type CatalogItem struct {
	Type string `json:"type"`
	Id   string `json:"id"`
}

type ManifestResponse struct {
	Id            string         `json:"id"`
	Version       string         `json:"version"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Types         []string       `json:"types"`
	Catalogs      []CatalogItem  `json:"catalogs"`
	Resources     []string       `json:"resources"`
	IdPrefixes    []string       `json:"idPrefixes,omitempty"`
	Logo          string         `json:"logo,omitempty"`
	Background    string         `json:"background,omitempty"`
	ContactEmail  string         `json:"contactEmail,omitempty"`
	BehaviorHints *BehaviorHints `json:"behaviorHints,omitempty"`
}

type BehaviorHints struct {
	Configurable          bool `json:"configurable,omitempty"`
	ConfigurationRequired bool `json:"configurationRequired,omitempty"`
	Adult                 bool `json:"adult,omitempty"`
	NotWebReady           bool `json:"notWebReady,omitempty"`
	DeepLinking           bool `json:"deepLinking,omitempty"`
}

// ErrorResponse is the body returned for addon-level request errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
