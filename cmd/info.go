package cmd

import (
	"github.com/urfave/cli"
)

// SceneInfo builds a built-in scene and reports its geometry statistics
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := buildScene(ctx.String("scene"), 1.0)
	if err != nil {
		return err
	}

	bounds := sc.Bounds()
	logger.Noticef("scene %q", ctx.String("scene"))
	logger.Noticef("primitives: %d", sc.PrimitiveCount())
	logger.Noticef("lights: %d", len(sc.Lights()))
	logger.Noticef("bounds: min %v max %v", bounds.Min, bounds.Max)
	return nil
}
