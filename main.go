package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/lumen-render/lumen/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "spectral path tracing renderer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to a png file",
			Description: `
Render one of the built-in scenes with the spectral path tracer. Rays are
traced at four hero wavelengths per sample and accumulated in CIE XYZ before
conversion to sRGB.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "cornell",
					Usage: "scene to render (cornell, sphere)",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 16,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Value: 10,
					Usage: "maximum path length",
				},
				cli.IntFlag{
					Name:  "rr-bounces",
					Value: 3,
					Usage: "minimum bounces before russian roulette",
				},
				cli.StringFlag{
					Name:  "sequence",
					Value: "sobol",
					Usage: "sample sequence (sobol, halton, hashed)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "render tile edge in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers (0 = all cpus)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "info",
			Usage: "print statistics for a built-in scene",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "cornell",
					Usage: "scene to inspect (cornell, sphere)",
				},
			},
			Action: cmd.SceneInfo,
		},
	}

	app.Run(os.Args)
}
