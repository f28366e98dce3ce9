package cmd

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/pkg/integrator"
	"github.com/lumen-render/lumen/pkg/renderer"
	"github.com/lumen-render/lumen/pkg/sampler"
	"github.com/lumen-render/lumen/pkg/scene"
)

// RenderFrame renders a built-in scene to a PNG file
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	config := renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		TileSize:        ctx.Int("tile-size"),
		NumWorkers:      ctx.Int("workers"),
		Sequence:        sampler.ParseSequence(ctx.String("sequence")),
		Integrator:      integrator.DefaultConfig(),
	}
	if depth := ctx.Int("num-bounces"); depth > 0 {
		config.Integrator.MaxDepth = depth
	}
	if rr := ctx.Int("rr-bounces"); rr > 0 {
		config.Integrator.RRMinBounce = rr
	}

	aspect := float64(config.Width) / float64(config.Height)
	sc, err := buildScene(ctx.String("scene"), aspect)
	if err != nil {
		return err
	}

	// Ctrl-C stops at the next tile boundary and writes the partial frame.
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	film, renderErr := renderer.NewRenderer(config).Render(renderCtx, sc, func(p renderer.Progress) {
		logger.Infof("tile %d/%d", p.TilesDone, p.TilesTotal)
	})
	if renderErr != nil && renderErr != context.Canceled {
		return renderErr
	}
	logger.Noticef("rendered in %s", time.Since(start).Round(time.Millisecond))

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, film.ToImage()); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)
	return renderErr
}

func buildScene(name string, aspect float64) (*scene.Scene, error) {
	switch name {
	case "cornell":
		return scene.NewCornellScene(aspect)
	case "sphere":
		return scene.NewSphereScene(aspect)
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}
