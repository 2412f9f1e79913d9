package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	sh "github.com/p-stream/stremio-addon/handlers/stremio"
	"github.com/p-stream/stremio-addon/services/providers"
	"github.com/p-stream/stremio-addon/services/resolver"
	ss "github.com/p-stream/stremio-addon/services/stremio"
	"github.com/p-stream/stremio-addon/services/tmdb"
	"github.com/p-stream/stremio-addon/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves stremio addon",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = web.RegisterFlags(c.Flags)
	c.Flags = tmdb.RegisterFlags(c.Flags)
	c.Flags = resolver.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	var servers []cs.Servable

	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false

	// Setting Web
	w := web.New(c, r)
	servers = append(servers, w)
	defer w.Close()

	// Setting TMDB Api
	ta := tmdb.New(c, cl)
	if ta == nil {
		return errors.New("tmdb api key is required")
	}

	// Setting Provider Registry
	engine := providers.NewRegistry()
	registerScrapers(engine)

	// Setting Resolver
	ex := resolver.NewPlaylistExpander(cl)
	nr := resolver.NewNormalizer(ex, resolver.HeaderOverrides(c))
	rs := resolver.New(engine, nr)

	// Setting Manifest
	m := ss.NewManifest(engine)

	// Setting Stremio
	sh.RegisterHandler(r, engine, m, rs, ta)

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err := serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}

// registerScrapers wires source and embed scrapers into the registry.
// Scraper implementations live out of tree and register here per deployment.
func registerScrapers(engine *providers.Registry) {
}
