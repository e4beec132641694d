package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
	"github.com/urfave/cli"
	"golang.org/x/image/colornames"
)

// envPrefix is prepended to every flag's environment variable
const envPrefix = "SPHERETRACE_"

// RenderFlags are the flags accepted by the render command. Flags that are
// not set keep the value from the scene.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "scene, s",
		Value:  "default",
		Usage:  "built-in scene name or path to a JSON scene file",
		EnvVar: envPrefix + "SCENE",
	},
	cli.StringFlag{
		Name:   "out, o",
		Value:  "-",
		Usage:  "output image (.ppm, .png, .bmp, .tif); - writes PPM to stdout",
		EnvVar: envPrefix + "OUT",
	},
	cli.IntFlag{
		Name:   "width",
		Usage:  "image width in pixels",
		EnvVar: envPrefix + "WIDTH",
	},
	cli.Float64Flag{
		Name:   "aspect",
		Usage:  "image aspect ratio (width / height)",
		EnvVar: envPrefix + "ASPECT",
	},
	cli.IntFlag{
		Name:   "spp",
		Usage:  "samples per pixel",
		EnvVar: envPrefix + "SPP",
	},
	cli.IntFlag{
		Name:   "depth",
		Usage:  "maximum number of ray bounces",
		EnvVar: envPrefix + "DEPTH",
	},
	cli.IntFlag{
		Name:   "workers",
		Usage:  "number of render workers (default: half the hardware threads plus one)",
		EnvVar: envPrefix + "WORKERS",
	},
	cli.IntFlag{
		Name:   "jobs-per-worker",
		Usage:  "row-range jobs per worker",
		EnvVar: envPrefix + "JOBS_PER_WORKER",
	},
	cli.Int64Flag{
		Name:   "seed",
		Usage:  "base random seed",
		EnvVar: envPrefix + "SEED",
	},
	cli.Float64Flag{
		Name:   "vfov",
		Usage:  "vertical field of view in degrees",
		EnvVar: envPrefix + "VFOV",
	},
	cli.Float64Flag{
		Name:   "aperture",
		Usage:  "lens aperture; 0 disables depth of field",
		EnvVar: envPrefix + "APERTURE",
	},
	cli.Float64Flag{
		Name:   "focus-distance",
		Usage:  "distance to the focal plane; 0 focuses on the look-at point",
		EnvVar: envPrefix + "FOCUS_DISTANCE",
	},
	cli.StringFlag{
		Name:   "horizon",
		Usage:  "sky color for downward rays, as a color name or r,g,b in [0,1]",
		EnvVar: envPrefix + "HORIZON",
	},
	cli.StringFlag{
		Name:   "zenith",
		Usage:  "sky color for upward rays, as a color name or r,g,b in [0,1]",
		EnvVar: envPrefix + "ZENITH",
	},
	cli.StringFlag{
		Name:   "thumbnail",
		Usage:  "also write a downscaled copy of the image to this file",
		EnvVar: envPrefix + "THUMBNAIL",
	},
	cli.IntFlag{
		Name:   "thumbnail-width",
		Value:  256,
		Usage:  "maximum thumbnail width",
		EnvVar: envPrefix + "THUMBNAIL_WIDTH",
	},
	cli.StringFlag{
		Name:  "save-scene",
		Usage: "write the resolved scene, flags applied, to this JSON file",
	},
	cli.BoolFlag{
		Name:  "stats",
		Usage: "display per-job render statistics",
	},
	cli.BoolFlag{
		Name:   "no-progress",
		Usage:  "do not report progress on stderr",
		EnvVar: envPrefix + "NO_PROGRESS",
	},
}

// Render a still image of a scene.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := ctx.String("scene")
	if ctx.NArg() > 0 {
		sceneName = ctx.Args().First()
	}

	desc, err := scene.Resolve(sceneName)
	if err != nil {
		return err
	}
	if err := applyOverrides(ctx, &desc); err != nil {
		return err
	}

	if path := ctx.String("save-scene"); path != "" {
		if err := scene.Save(path, desc); err != nil {
			return fmt.Errorf("failed to save scene: %w", err)
		}
		logger.Noticef("saved scene %q to %s", desc.Name, path)
	}

	sc, err := desc.Build()
	if err != nil {
		return err
	}
	checkSystem(sc.Config)

	rt, err := sc.NewRaytracer()
	if err != nil {
		return err
	}
	if !ctx.Bool("no-progress") {
		rt.SetProgressFunc(newProgressPrinter(os.Stderr))
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Noticef("rendering scene %q (%d spheres)", sc.Name, sc.World.Len())
	fb, stats, err := rt.Render(renderCtx)
	if !ctx.Bool("no-progress") {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if ctx.Bool("stats") {
		displayRenderStats(stats)
	} else {
		logger.Noticef("rendered %dx%d in %s", stats.Width, stats.Height, stats.Duration.Round(time.Millisecond))
	}

	if err := writeImage(ctx.String("out"), fb, os.Stdout); err != nil {
		return err
	}

	if path := ctx.String("thumbnail"); path != "" {
		if err := output.WriteThumbnail(path, fb, ctx.Int("thumbnail-width")); err != nil {
			return fmt.Errorf("failed to write thumbnail: %w", err)
		}
	}
	return nil
}

// applyOverrides copies every explicitly set flag into the description
func applyOverrides(ctx *cli.Context, desc *scene.Description) error {
	intOverrides := map[string]*int{
		"width":           &desc.Image.Width,
		"spp":             &desc.Image.SamplesPerPixel,
		"depth":           &desc.Image.MaxDepth,
		"workers":         &desc.Image.NumWorkers,
		"jobs-per-worker": &desc.Image.JobsPerWorker,
	}
	for name, field := range intOverrides {
		if ctx.IsSet(name) {
			*field = ctx.Int(name)
		}
	}

	floatOverrides := map[string]*float64{
		"aspect":         &desc.Image.AspectRatio,
		"vfov":           &desc.Camera.VFov,
		"aperture":       &desc.Camera.Aperture,
		"focus-distance": &desc.Camera.FocusDistance,
	}
	for name, field := range floatOverrides {
		if ctx.IsSet(name) {
			*field = ctx.Float64(name)
		}
	}

	if ctx.IsSet("seed") {
		desc.Image.Seed = ctx.Int64("seed")
	}

	colorOverrides := map[string]*core.Vec3{
		"horizon": &desc.Background.Horizon,
		"zenith":  &desc.Background.Zenith,
	}
	for name, field := range colorOverrides {
		if !ctx.IsSet(name) {
			continue
		}
		c, err := parseColor(ctx.String(name))
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", name, err)
		}
		*field = c
	}
	return nil
}

// parseColor accepts an SVG color name ("skyblue") or a linear RGB
// triple ("0.5,0.7,1")
func parseColor(value string) (core.Vec3, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value))]; ok {
		return core.NewVec3(float64(named.R)/255, float64(named.G)/255, float64(named.B)/255), nil
	}

	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("%q is neither a color name nor r,g,b", value)
	}
	var rgb [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("%q: %w", value, err)
		}
		if v < 0 {
			return core.Vec3{}, fmt.Errorf("%q: negative component", value)
		}
		rgb[i] = v
	}
	return core.NewVec3(rgb[0], rgb[1], rgb[2]), nil
}

// checkSystem logs the machine the render runs on and warns when the
// framebuffer is unlikely to fit in memory
func checkSystem(config renderer.Config) {
	info, err := renderer.ReadSystemInfo()
	if err != nil {
		logger.Debugf("system information unavailable: %v", err)
		return
	}
	logger.Infof("%s, %d logical cores, %d MiB RAM (%d MiB available)",
		info.CPUModel, info.LogicalCores, info.TotalRAM>>20, info.AvailableRAM>>20)

	if err := config.CheckMemory(info); err != nil {
		logger.Warningf("%v", err)
	}
}

func writeImage(path string, fb *renderer.Framebuffer, stdout io.Writer) error {
	if path == "-" {
		return output.WritePPM(stdout, fb)
	}
	return output.WriteFile(path, fb)
}

// newProgressPrinter reports whole-percent progress, overwriting one line
func newProgressPrinter(w io.Writer) renderer.ProgressFunc {
	var mu sync.Mutex
	lastPercent := -1

	return func(rowsDone, totalRows int) {
		percent := rowsDone * 100 / totalRows

		mu.Lock()
		defer mu.Unlock()
		if percent > lastPercent {
			lastPercent = percent
			fmt.Fprintf(w, "\rFinished: %d%%", percent)
		}
	}
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("render statistics (%s samples/s)\n%s", formatRate(stats.SamplesPerSecond()), buf.String())
}

func formatRate(rate float64) string {
	switch {
	case rate >= 1e6:
		return fmt.Sprintf("%.2fM", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1fk", rate/1e3)
	default:
		return fmt.Sprintf("%.0f", rate)
	}
}

// describeVec formats a vector for tables
func describeVec(v core.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
