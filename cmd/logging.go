package cmd

import (
	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/logging"
)

var logger = logging.New("lumen")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		logging.SetLevel(logging.Info)
	}

	if ctx.GlobalBool("vv") {
		logging.SetLevel(logging.Debug)
	}
}
