package cmd

import (
	"github.com/achilleasa/ptlive/config"
	"github.com/achilleasa/ptlive/log"
	"github.com/urfave/cli"
)

var logger = log.New("ptlive")

// Apply the configured log level. The -v and -vv flags take precedence.
func setupLogging(ctx *cli.Context, cfg config.Config) {
	log.SetLevel(cfg.Level())

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
