package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

var ErrUnknownScene = errors.New("scene: unknown built-in scene")

type builtinScene struct {
	description string
	build       func() Description
}

var builtins = map[string]builtinScene{
	"default": {
		description: "Glass, diffuse and mirror spheres on a green ground",
		build:       newDefaultScene,
	},
	"single-sphere": {
		description: "One diffuse sphere under the sky gradient",
		build:       newSingleSphereScene,
	},
	"sphere-grid": {
		description: "Grid of metal spheres coloured across the OKLCH hue wheel",
		build:       newSphereGridScene,
	},
}

// Builtin returns the description of a named built-in scene
func Builtin(name string) (Description, error) {
	b, ok := builtins[name]
	if !ok {
		return Description{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, BuiltinNames())
	}
	desc := b.build()
	desc.Name = name
	desc.Description = b.description
	return desc, nil
}

// BuiltinNames returns the sorted names of the built-in scenes
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newDefaultScene() Description {
	desc := DefaultDescription()
	desc.Camera = renderer.CameraConfig{
		LookFrom:      core.NewVec3(30, 20, 5),
		LookAt:        core.NewVec3(0, 1, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		Aperture:      0.1,
		FocusDistance: 30,
	}

	desc.Materials = map[string]material.Spec{
		"ground": material.LambertianSpec(core.NewVec3(0.5, 0.7, 0.5)),
		"glass":  material.DielectricSpec(0.5),
		"orange": material.LambertianSpec(core.NewVec3(0.9, 0.5, 0.1)),
		"green":  material.MetalSpec(core.NewVec3(0.2, 0.9, 0.5), 0),
		"steel":  material.MetalSpec(core.NewVec3(0.7, 0.7, 0.7), 0),
	}

	desc.Spheres = []SphereSpec{
		{Center: core.NewVec3(0, -1000, 0), Radius: 1000, MaterialRef: "ground"},
		{Center: core.NewVec3(1, 1.5, -4.5), Radius: 1.5, MaterialRef: "glass"},
		{Center: core.NewVec3(-1, 3, 0), Radius: 3, MaterialRef: "orange"},
		{Center: core.NewVec3(1, 1.5, 4.5), Radius: 1.5, MaterialRef: "green"},
	}
	// Small mirror balls in an arc in front of the big diffuse sphere
	for _, c := range []core.Vec3{
		core.NewVec3(6, 0.5, 0),
		core.NewVec3(5.5, 0.5, 1),
		core.NewVec3(5.5, 0.5, -1),
		core.NewVec3(5, 0.5, 2),
		core.NewVec3(5, 0.5, -2),
	} {
		desc.Spheres = append(desc.Spheres, SphereSpec{Center: c, Radius: 0.5, MaterialRef: "steel"})
	}
	return desc
}

func newSingleSphereScene() Description {
	desc := DefaultDescription()
	desc.Image.Width = 400
	desc.Image.AspectRatio = 16.0 / 9.0
	desc.Image.SamplesPerPixel = 50
	desc.Camera = renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}

	diffuse := material.LambertianSpec(core.NewVec3(0.5, 0.5, 0.5))
	desc.Spheres = []SphereSpec{
		{Center: core.NewVec3(0, 0, -1), Radius: 0.5, Material: &diffuse},
	}
	return desc
}

func newSphereGridScene() Description {
	desc := DefaultDescription()
	desc.Image.Width = 800
	desc.Image.AspectRatio = 16.0 / 9.0
	desc.Image.SamplesPerPixel = 50
	desc.Image.MaxDepth = 20
	desc.Camera = renderer.CameraConfig{
		LookFrom: core.NewVec3(4.5, 6, 18),
		LookAt:   core.NewVec3(4.5, 0.8, 4.5),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40,
		Aperture: 0.02,
	}

	desc.Materials = map[string]material.Spec{
		"ground": material.LambertianSpec(core.NewVec3(0.5, 0.5, 0.5)),
	}
	desc.Spheres = []SphereSpec{
		{Center: core.NewVec3(4.5, -1000, 4.5), Radius: 1000, MaterialRef: "ground"},
	}

	const (
		gridSize   = 10
		targetArea = 9.0
		lightness  = 0.65
		minChroma  = 0.05
		maxChroma  = 0.25
	)
	spacing := targetArea / float64(gridSize-1)
	radius := math.Min(0.35, spacing*0.35)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2 + 4.5
			z := float64(j)*spacing - targetArea/2 + 4.5

			// Hue sweeps across x, chroma increases along z
			hue := float64(i) / float64(gridSize-1) * 360
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			spec := material.MetalSpec(oklchToRGB(lightness, chroma, hue), 0.05)

			desc.Spheres = append(desc.Spheres, SphereSpec{
				Center:   core.NewVec3(x, radius, z),
				Radius:   radius,
				Material: &spec,
			})
		}
	}
	return desc
}

// oklchToRGB converts OKLCH (lightness 0-1, chroma, hue in degrees) to
// linear RGB clamped to [0,1]
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lms := []float64{
		l + 0.3963377774*a + 0.2158037573*b,
		l - 0.1055613458*a - 0.0638541728*b,
		l - 0.0894841775*a - 1.2914855480*b,
	}
	for i, v := range lms {
		lms[i] = v * v * v
	}

	rgb := []float64{
		+4.0767416621*lms[0] - 3.3077115913*lms[1] + 0.2309699292*lms[2],
		-1.2684380046*lms[0] + 2.6097574011*lms[1] - 0.3413193965*lms[2],
		-0.0041960863*lms[0] - 0.7034186147*lms[1] + 1.7076147010*lms[2],
	}
	for i, v := range rgb {
		rgb[i] = math.Max(0, math.Min(1, v))
	}
	return core.NewVec3(rgb[0], rgb[1], rgb[2])
}
