package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/p-stream/stremio-addon/services/providers"
)

const masterPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=842x480,CODECS="avc1.4d401f,mp4a.40.2"
480/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=1400000,RESOLUTION=1280x720,CODECS="avc1.4d401f,mp4a.40.2"
720/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2800000,RESOLUTION=1920x1080,CODECS="avc1.640028,mp4a.40.2"
1080/index.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXTINF:9.000,
seg0.ts
#EXTINF:9.000,
seg1.ts
#EXT-X-ENDLIST
`

func servePlaylist(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExpand_MediaPlaylist(t *testing.T) {
	server := servePlaylist(t, mediaPlaylist)
	e := NewPlaylistExpander(server.Client())

	u := server.URL + "/stream/index.m3u8"
	variants, err := e.Expand(context.Background(), u, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(variants))
	}
	if variants[0].URL != u {
		t.Errorf("expected original URL %q, got %q", u, variants[0].URL)
	}
	if variants[0].Quality != "" {
		t.Errorf("expected no quality, got %q", variants[0].Quality)
	}
}

func TestExpand_MasterPlaylist(t *testing.T) {
	server := servePlaylist(t, masterPlaylist)
	e := NewPlaylistExpander(server.Client())

	variants, err := e.Expand(context.Background(), server.URL+"/stream/master.m3u8", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(variants))
	}

	wantQualities := []providers.Quality{providers.Quality480, providers.Quality720, providers.Quality1080}
	wantURLs := []string{
		server.URL + "/stream/480/index.m3u8",
		server.URL + "/stream/720/index.m3u8",
		server.URL + "/stream/1080/index.m3u8",
	}
	for i, v := range variants {
		if v.Quality != wantQualities[i] {
			t.Errorf("variant %d quality = %q, want %q", i, v.Quality, wantQualities[i])
		}
		if v.URL != wantURLs[i] {
			t.Errorf("variant %d URL = %q, want %q", i, v.URL, wantURLs[i])
		}
	}
}

func TestExpand_MasterPlaylist_AbsoluteVariantURL(t *testing.T) {
	body := `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=2800000,RESOLUTION=1920x1080
https://cdn.example.com/hls/1080.m3u8
`
	server := servePlaylist(t, body)
	e := NewPlaylistExpander(server.Client())

	variants, err := e.Expand(context.Background(), server.URL+"/master.m3u8", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(variants))
	}
	if variants[0].URL != "https://cdn.example.com/hls/1080.m3u8" {
		t.Errorf("absolute variant URL must pass through, got %q", variants[0].URL)
	}
}

func TestExpand_MasterPlaylist_NoResolution(t *testing.T) {
	body := `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=1400000
variant.m3u8
`
	server := servePlaylist(t, body)
	e := NewPlaylistExpander(server.Client())

	variants, err := e.Expand(context.Background(), server.URL+"/master.m3u8", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(variants))
	}
	if variants[0].Quality != "" {
		t.Errorf("expected no quality for missing resolution, got %q", variants[0].Quality)
	}
}

func TestExpand_ForwardsHeaders(t *testing.T) {
	var gotOrigin, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrigin = r.Header.Get("Origin")
		gotToken = r.Header.Get("X-Token")
		_, _ = fmt.Fprint(w, mediaPlaylist)
	}))
	defer server.Close()
	e := NewPlaylistExpander(server.Client())

	_, err := e.Expand(context.Background(), server.URL+"/index.m3u8", map[string]string{
		"Origin":  "https://example.com",
		"X-Token": "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOrigin != "https://example.com" {
		t.Errorf("Origin = %q, want https://example.com", gotOrigin)
	}
	if gotToken != "secret" {
		t.Errorf("X-Token = %q, want secret", gotToken)
	}
}

func TestExpand_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	e := NewPlaylistExpander(server.Client())

	_, err := e.Expand(context.Background(), server.URL+"/index.m3u8", nil)
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestExpand_ParseFailure(t *testing.T) {
	server := servePlaylist(t, "<html>not a playlist</html>")
	e := NewPlaylistExpander(server.Client())

	_, err := e.Expand(context.Background(), server.URL+"/index.m3u8", nil)
	if err == nil {
		t.Fatal("expected error for malformed playlist")
	}
}
