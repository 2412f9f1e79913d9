package resolver

import (
	"github.com/urfave/cli"
)

const (
	StreamOriginFlag  = "stream-origin"
	StreamRefererFlag = "stream-referer"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   StreamOriginFlag,
			Usage:  "Origin header attached to playlist fetches and playback requests",
			Value:  "https://pstream.mov",
			EnvVar: "STREAM_ORIGIN",
		},
		cli.StringFlag{
			Name:   StreamRefererFlag,
			Usage:  "Referer header attached to playlist fetches and playback requests",
			Value:  "https://pstream.mov/",
			EnvVar: "STREAM_REFERER",
		},
	)
}

// HeaderOverrides builds the base override header set from flags. Stream
// headers and preferred headers are merged on top of it.
func HeaderOverrides(c *cli.Context) map[string]string {
	overrides := map[string]string{}
	if v := c.String(StreamOriginFlag); v != "" {
		overrides["Origin"] = v
	}
	if v := c.String(StreamRefererFlag); v != "" {
		overrides["Referer"] = v
	}
	return overrides
}
