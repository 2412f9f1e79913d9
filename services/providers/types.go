package providers

// Flag is a capability tag attached to a scraped stream.
type Flag string

const (
	// FlagCORSAllowed marks a stream that can be fetched directly from a browser.
	FlagCORSAllowed Flag = "cors-allowed"
	// FlagIPLocked marks a stream that is only playable from the scraping
	// server's network origin and cannot be handed to an arbitrary client.
	FlagIPLocked Flag = "ip-locked"
)

// StreamType discriminates the two stream variants a scraper can produce.
type StreamType string

const (
	StreamTypeFile StreamType = "file"
	StreamTypeHLS  StreamType = "hls"
)

// Caption describes a subtitle track attached to a stream.
type Caption struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Language string `json:"language"`
}

// StreamFile is a single playable file within a file-based stream.
type StreamFile struct {
	URL string `json:"url"`
}

// Stream is one scraped stream candidate. It is a tagged union: file-based
// streams carry Qualities, playlist-based streams carry Playlist, never both.
type Stream struct {
	ID               string                 `json:"id"`
	Type             StreamType             `json:"type"`
	Flags            []Flag                 `json:"flags"`
	Captions         []Caption              `json:"captions"`
	Headers          map[string]string      `json:"headers,omitempty"`
	PreferredHeaders map[string]string      `json:"preferredHeaders,omitempty"`
	Qualities        map[Quality]StreamFile `json:"qualities,omitempty"`
	Playlist         string                 `json:"playlist,omitempty"`
}

// HasFlag reports whether the stream carries the given capability tag.
func (s *Stream) HasFlag(f Flag) bool {
	for _, sf := range s.Flags {
		if sf == f {
			return true
		}
	}
	return false
}

// EmbedRef points at a secondary scrape target discovered by a source scraper.
type EmbedRef struct {
	EmbedID string `json:"embedId"`
	URL     string `json:"url"`
}

// SourceOutput is the result of a source scrape. Streams and Embeds are
// mutually exclusive for one scrape result.
type SourceOutput struct {
	Streams []*Stream
	Embeds  []EmbedRef
}

// EmbedOutput is the result of an embed scrape.
type EmbedOutput struct {
	Streams []*Stream
}

// MediaType of content a scraper can handle.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeShow  MediaType = "show"
)

// MetaOutput carries display metadata for a registered source or embed.
type MetaOutput struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	MediaTypes []MediaType `json:"mediaTypes,omitempty"`
}
