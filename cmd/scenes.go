package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display the render settings, camera and spheres of a scene.
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name or file argument")
	}

	desc, err := scene.Resolve(ctx.Args().First())
	if err != nil {
		return err
	}
	// Surface configuration errors without rendering anything
	sc, err := desc.Build()
	if err != nil {
		return err
	}

	logger.Noticef("scene %q: %s\n%s", desc.Name, desc.Description, describeScene(desc, sc.Camera))
	return nil
}

func describeScene(desc scene.Description, camera *renderer.Camera) string {
	var buf bytes.Buffer

	settings := tablewriter.NewWriter(&buf)
	settings.SetAutoFormatHeaders(false)
	settings.SetAutoWrapText(false)
	settings.SetHeader([]string{"Setting", "Value"})
	settings.AppendBulk([][]string{
		{"Resolution", fmt.Sprintf("%dx%d", desc.Image.Width, desc.Image.Height())},
		{"Samples per pixel", fmt.Sprintf("%d", desc.Image.SamplesPerPixel)},
		{"Max depth", fmt.Sprintf("%d", desc.Image.MaxDepth)},
		{"Workers", fmt.Sprintf("%d x %d jobs", desc.Image.NumWorkers, desc.Image.JobsPerWorker)},
		{"Seed", fmt.Sprintf("%d", desc.Image.Seed)},
		{"Look from", describeVec(desc.Camera.LookFrom)},
		{"Look at", describeVec(desc.Camera.LookAt)},
		{"Forward", describeVec(camera.GetCameraForward())},
		{"Vertical FOV", fmt.Sprintf("%g", desc.Camera.VFov)},
		{"Aperture", fmt.Sprintf("%g", desc.Camera.Aperture)},
		{"Focus distance", fmt.Sprintf("%g", desc.Camera.FocusDistance)},
	})
	settings.Render()

	spheres := tablewriter.NewWriter(&buf)
	spheres.SetAutoFormatHeaders(false)
	spheres.SetAutoWrapText(false)
	spheres.SetHeader([]string{"#", "Center", "Radius", "Material"})
	for i, s := range desc.Spheres {
		mat := s.MaterialRef
		if s.Material != nil {
			mat = describeMaterial(*s.Material)
		}
		spheres.Append([]string{fmt.Sprintf("%d", i), describeVec(s.Center), fmt.Sprintf("%g", s.Radius), mat})
	}
	spheres.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", len(desc.Spheres))})
	spheres.Render()

	if len(desc.Materials) > 0 {
		materials := tablewriter.NewWriter(&buf)
		materials.SetAutoFormatHeaders(false)
		materials.SetAutoWrapText(false)
		materials.SetHeader([]string{"Material", "Definition"})
		for _, name := range slices.Sorted(maps.Keys(desc.Materials)) {
			materials.Append([]string{name, describeMaterial(desc.Materials[name])})
		}
		materials.Render()
	}

	return buf.String()
}

func describeMaterial(spec material.Spec) string {
	switch spec.Type {
	case material.TypeMetal:
		return fmt.Sprintf("metal %s fuzz %g", describeVec(spec.Albedo), spec.Fuzz)
	case material.TypeDielectric:
		return fmt.Sprintf("dielectric index %g", spec.RefractionIndex)
	default:
		return fmt.Sprintf("%s %s", spec.Type, describeVec(spec.Albedo))
	}
}

// List the built-in scenes and the scene files in a directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Type", "Spheres", "Description"})
	for _, info := range scenes {
		count := fmt.Sprintf("%d", info.Spheres)
		if info.Spheres < 0 {
			count = "invalid"
		}
		table.Append([]string{info.ID, info.DisplayName, info.Type, count, info.Description})
	}
	table.Render()

	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
