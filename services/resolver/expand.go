package resolver

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bluenviron/gohlslib/v2/pkg/playlist"
	"github.com/pkg/errors"

	"github.com/p-stream/stremio-addon/services/providers"
)

// Variant is one playable rendition of an HLS playlist. Quality is empty when
// the playlist declares no resolution for it.
type Variant struct {
	URL     string
	Quality providers.Quality
}

// PlaylistExpander resolves an HLS playlist URL into its playable variants.
type PlaylistExpander struct {
	cl *http.Client
}

func NewPlaylistExpander(cl *http.Client) *PlaylistExpander {
	return &PlaylistExpander{
		cl: cl,
	}
}

// Expand fetches and parses the playlist at playlistURL using the given
// headers. A media playlist is already the terminal stream and passes through
// as a single variant; a multivariant (master) playlist yields one variant per
// declared rendition in declaration order, with URIs resolved against the
// master URL. Fetch and parse failures propagate to the caller.
func (s *PlaylistExpander) Expand(ctx context.Context, playlistURL string, headers map[string]string) ([]Variant, error) {
	body, err := s.fetchPlaylist(ctx, playlistURL, headers)
	if err != nil {
		return nil, err
	}

	pl, err := playlist.Unmarshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse playlist")
	}

	mv, ok := pl.(*playlist.Multivariant)
	if !ok {
		return []Variant{{URL: playlistURL}}, nil
	}

	variants := make([]Variant, 0, len(mv.Variants))
	for _, v := range mv.Variants {
		u, err := resolveURL(playlistURL, v.URI)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve variant URL")
		}
		variants = append(variants, Variant{
			URL:     u,
			Quality: variantQuality(v.Resolution),
		})
	}
	return variants, nil
}

func (s *PlaylistExpander) fetchPlaylist(ctx context.Context, playlistURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", playlistURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch playlist")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("playlist returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read playlist body")
	}
	return body, nil
}

// variantQuality classifies a RESOLUTION attribute value ("WxH"). Variants
// without a parseable resolution get no quality label at all.
func variantQuality(resolution string) providers.Quality {
	parts := strings.Split(resolution, "x")
	if len(parts) != 2 {
		return ""
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	return providers.QualityFromHeight(height)
}

// resolveURL resolves target against base, leaving absolute targets untouched.
// Master playlists commonly reference variants by relative path.
func resolveURL(base, target string) (string, error) {
	t, err := url.Parse(target)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse target URL")
	}
	if t.IsAbs() {
		return target, nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse base URL")
	}
	return b.ResolveReference(t).String(), nil
}
