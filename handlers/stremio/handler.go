package stremio

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/p-stream/stremio-addon/services/providers"
	"github.com/p-stream/stremio-addon/services/resolver"
	"github.com/p-stream/stremio-addon/services/stremio"
	"github.com/p-stream/stremio-addon/services/tmdb"
)

type Handler struct {
	engine   providers.Engine
	manifest *stremio.Manifest
	resolver *resolver.Resolver
	tmdb     *tmdb.Api
}

func RegisterHandler(r *gin.Engine, engine providers.Engine, m *stremio.Manifest, rs *resolver.Resolver, ta *tmdb.Api) {
	h := &Handler{
		engine:   engine,
		manifest: m,
		resolver: rs,
		tmdb:     ta,
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
	}))
	r.GET("/manifest.json", h.index)
	r.GET("/configure", h.configure)
	r.GET("/api/sources", h.sources)
	r.GET("/:source/configure", h.configure)
	r.GET("/:source/manifest.json", h.sourceManifest)
	r.GET("/:source/stream/:type/*id", h.stream)
}

func (s *Handler) index(c *gin.Context) {
	c.JSON(http.StatusOK, s.manifest.GetIndex(c.Request.Context()))
}

// configure redirects to the landing page; stremio addon directories require
// the endpoint to exist even for addons configured elsewhere.
func (s *Handler) configure(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

func (s *Handler) sources(c *gin.Context) {
	metas := s.engine.ListSources()
	ids := make([]string, 0, len(metas))
	for _, m := range metas {
		ids = append(ids, m.ID)
	}
	c.JSON(http.StatusOK, ids)
}

func (s *Handler) sourceManifest(c *gin.Context) {
	resp := s.manifest.GetSource(c.Request.Context(), c.Param("source"))
	if resp == nil {
		c.JSON(http.StatusBadRequest, stremio.ErrorResponse{Error: "Source not found."})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Handler) stream(c *gin.Context) {
	source := c.Param("source")
	ct := c.Param("type")
	id := s.cleanResourceID(c.Param("id"))
	if ct != "movie" && ct != "series" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if s.engine.GetMetadata(source) == nil {
		c.JSON(http.StatusBadRequest, stremio.ErrorResponse{Error: "Source not found."})
		return
	}

	media, err := s.tmdb.GetMediaInfo(c.Request.Context(), ct, id)
	if err != nil {
		log.WithError(err).
			WithField("media_id", id).
			Error("failed to get media info")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	resp, err := s.resolver.Resolve(c.Request.Context(), source, media)
	if err != nil {
		log.WithError(err).
			WithField("source", source).
			WithField("media_id", id).
			Error("failed to resolve streams")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Handler) cleanResourceID(rawID string) string {
	return strings.TrimPrefix(strings.TrimSuffix(rawID, ".json"), "/")
}
