// Package renderer drives the integrator over the film in parallel. The film
// is cut into tiles, workers pull tiles from a shared channel, and every
// sample is a pure function of its pixel and sample index, so the output is
// identical regardless of worker count or tile scheduling.
package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/integrator"
	"github.com/lumen-render/lumen/pkg/logging"
	"github.com/lumen-render/lumen/pkg/sampler"
	"github.com/lumen-render/lumen/pkg/scene"
	"github.com/lumen-render/lumen/pkg/spectrum"
)

var log = logging.New("renderer")

// DefaultTileSize is the square tile edge used when the configuration does
// not specify one
const DefaultTileSize = 32

// Config controls the render loop
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	TileSize        int
	NumWorkers      int // 0 uses all CPUs
	Sequence        sampler.Sequence
	Integrator      integrator.Config
}

// DefaultConfig returns render settings for a small preview
func DefaultConfig() Config {
	return Config{
		Width:           512,
		Height:          512,
		SamplesPerPixel: 16,
		TileSize:        DefaultTileSize,
		Sequence:        sampler.Sobol,
		Integrator:      integrator.DefaultConfig(),
	}
}

// Progress reports a finished tile
type Progress struct {
	TilesDone  int
	TilesTotal int
	Tile       Tile
}

// Renderer renders a scene to a film using a pool of tile workers
type Renderer struct {
	config Config
	tracer *integrator.PathTracer
}

// NewRenderer creates a renderer from its configuration
func NewRenderer(config Config) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = 1
	}
	return &Renderer{
		config: config,
		tracer: integrator.NewPathTracer(config.Integrator),
	}
}

// Render traces the scene and returns the accumulated film. Cancelling the
// context stops the render at the next tile boundary; the film holds every
// tile completed so far. onProgress may be nil.
func (r *Renderer) Render(ctx context.Context, sc *scene.Scene, onProgress func(Progress)) (*Film, error) {
	film := NewFilm(r.config.Width, r.config.Height)
	tiles := MakeTiles(r.config.Width, r.config.Height, r.config.TileSize)

	log.Infof("rendering %dx%d, %d spp, %d tiles, %d workers, %s sequence",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel,
		len(tiles), r.config.NumWorkers, r.config.Sequence)

	work := make(chan Tile, len(tiles))
	for _, t := range tiles {
		work <- t
	}
	close(work)

	done := make(chan Tile, len(tiles))

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.config.NumWorkers; w++ {
		g.Go(func() error {
			for tile := range work {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				r.renderTile(sc, film, tile)
				done <- tile
			}
			return nil
		})
	}

	// Progress reporting stays on the caller's goroutine path, workers
	// only signal completion.
	g.Go(func() error {
		for i := 0; i < len(tiles); i++ {
			select {
			case tile := <-done:
				if onProgress != nil {
					onProgress(Progress{TilesDone: i + 1, TilesTotal: len(tiles), Tile: tile})
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return film, err
	}
	if n := film.DroppedSamples(); n > 0 {
		log.Warningf("dropped %d non-finite samples", n)
	}
	return film, nil
}

// renderTile traces every sample of every pixel in the tile
func (r *Renderer) renderTile(sc *scene.Scene, film *Film, tile Tile) {
	width := uint32(r.config.Width)

	for y := tile.Y0; y < tile.Y1; y++ {
		for x := tile.X0; x < tile.X1; x++ {
			pixel := uint32(y)*width + uint32(x)

			for i := 0; i < r.config.SamplesPerPixel; i++ {
				ps := sampler.NewPixelSampler(r.config.Sequence, pixel, uint32(i))

				// Camera dimensions: filter, lens, time, wavelength.
				fu, fv := ps.Get2D()
				lu, lv := ps.Get2D()
				timeSample := ps.Get1D()
				wavelengthU := ps.Get1D()

				// Image rows run top to bottom, camera t runs bottom to
				// top.
				s := (float64(x) + fu) / float64(r.config.Width)
				t := 1 - (float64(y)+fv)/float64(r.config.Height)

				lambdas := spectrum.SampleHeroWavelengths(wavelengthU)
				ray := sc.Camera.GenerateRay(s, t, core.Vec2{X: lu, Y: lv}, timeSample)

				energy := r.tracer.Li(ray, sc, ps, lambdas)
				film.AddSample(x, y, spectrum.HeroToXYZ(lambdas, energy))
			}
		}
	}
}
