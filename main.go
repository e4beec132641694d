package main

import (
	"os"

	"github.com/df07/go-sphere-pathtracer/cmd"
	"github.com/df07/go-sphere-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("spheretrace")

func newApp() *cli.App {
	// The default "version, v" flag would collide with -v
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spheretrace"
	app.Usage = "render sphere scenes using Monte Carlo path tracing"
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
		cli.BoolFlag{
			Name:  "q",
			Usage: "only log warnings and errors",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image",
			Description: `
Render a built-in scene or a JSON scene file. The scene may also be given as
the first argument. Flags override the values stored in the scene and can be
set through SPHERETRACE_* environment variables.

Without --out the image is written to stdout as plain PPM (P3), with
progress reported on stderr.`,
			ArgsUsage: "[scene]",
			Flags:     cmd.RenderFlags,
			Action:    cmd.Render,
		},
		{
			Name:      "scene-info",
			Usage:     "display the settings and spheres of a scene",
			ArgsUsage: "scene",
			Action:    cmd.SceneInfo,
		},
		{
			Name:  "list-scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "dir, d",
					Value:  "scenes",
					Usage:  "directory to scan for *.json scene files",
					EnvVar: "SPHERETRACE_SCENE_DIR",
				},
			},
			Action: cmd.ListScenes,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
