// Package generator implements the synthetic dataset generation loop:
// it repeatedly builds a randomized scene through a rendering host,
// derives the foreground object's bounding box from host-projected
// geometry, and persists image/label pairs until the target count of
// accepted frames is reached.
package generator

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/menta2k/synthgen/internal/utils"
	"github.com/menta2k/synthgen/pkg/host"
	"github.com/menta2k/synthgen/pkg/labels"
	"github.com/menta2k/synthgen/pkg/sampler"
	"github.com/menta2k/synthgen/pkg/types"
)

func vec3(x, y, z float64) types.Vec3 {
	return types.Vec3{X: x, Y: y, Z: z}
}

// sunPose is the fixed placement of the persistent directional light;
// only its energy is sampled, once, when the light is created.
var sunPose = host.SunLight{
	Location: vec3(5, -5, 5),
	Rotation: vec3(0.7, 0.2, -0.7),
}

// Config holds the generation parameters for a run
type Config struct {
	Models         []string
	BackgroundsDir string
	NumImages      int
	OutputDir      string
	Width          int
	Height         int
	ClassID        int
	Samples        int
	Seed           int64
	Sampling       sampler.Config
}

// DefaultConfig returns a Config with the default resolution, sample
// count and randomization ranges. Models, backgrounds and output
// locations still have to be filled in.
func DefaultConfig() Config {
	return Config{
		NumImages: 1000,
		Width:     640,
		Height:    640,
		ClassID:   0,
		Samples:   128,
		Seed:      1,
		Sampling:  sampler.DefaultConfig(),
	}
}

// Stats summarizes a run. Frames counts every attempt; the frame index
// always advances, while Accepted only advances when both the render
// and the label write succeed.
type Stats struct {
	Frames    int
	Accepted  int
	Discarded int
}

// Generator produces labeled training images through a rendering host
type Generator struct {
	config  Config
	host    host.RenderHost
	sampler *sampler.Sampler
	logger  *log.Logger
}

// New creates a Generator for the given configuration and host
func New(config Config, h host.RenderHost) *Generator {
	return &Generator{
		config:  config,
		host:    h,
		sampler: sampler.NewWithConfig(config.Seed, config.Sampling),
		logger:  log.Default(),
	}
}

// SetLogger replaces the progress logger
func (g *Generator) SetLogger(logger *log.Logger) {
	g.logger = logger
}

// Run generates image/label pairs until Config.NumImages frames have
// been accepted. Frames where the imported model has no mesh or where
// the object falls outside the camera frustum are logged, discarded
// and retried with a fresh random draw; there is no retry limit.
//
// Fatal conditions (empty model list, no background images, an
// unsupported model extension, any host failure) abort the run. Files
// written for previously accepted frames are left in place.
func (g *Generator) Run(ctx context.Context) (Stats, error) {
	stats := Stats{}

	if len(g.config.Models) == 0 {
		return stats, fmt.Errorf("model list is empty")
	}

	backgrounds, err := utils.ListImageFiles(g.config.BackgroundsDir)
	if err != nil {
		return stats, fmt.Errorf("failed to list backgrounds: %w", err)
	}
	if len(backgrounds) == 0 {
		return stats, fmt.Errorf("no background images found in %s", g.config.BackgroundsDir)
	}

	imageDir := filepath.Join(g.config.OutputDir, "images")
	labelDir := filepath.Join(g.config.OutputDir, "labels")
	if err := utils.EnsureDir(imageDir); err != nil {
		return stats, fmt.Errorf("failed to create image dir: %w", err)
	}
	if err := utils.EnsureDir(labelDir); err != nil {
		return stats, fmt.Errorf("failed to create label dir: %w", err)
	}

	settings := host.RenderSettings{
		Width:           g.config.Width,
		Height:          g.config.Height,
		Samples:         g.config.Samples,
		TransparentFilm: true,
	}
	if err := g.host.Configure(ctx, settings); err != nil {
		return stats, fmt.Errorf("failed to configure renderer: %w", err)
	}

	sunUp := false
	for stats.Accepted < g.config.NumImages {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		// Tear down everything but the camera and lights so thousands
		// of iterations don't accumulate scene objects
		if err := g.host.ResetScene(ctx); err != nil {
			return stats, fmt.Errorf("failed to reset scene: %w", err)
		}

		modelPath := g.sampler.Pick(g.config.Models)
		format, err := host.FormatFromPath(modelPath)
		if err != nil {
			return stats, err
		}

		objects, err := g.host.ImportModel(ctx, modelPath, format)
		if err != nil {
			return stats, fmt.Errorf("failed to import %s: %w", modelPath, err)
		}

		mesh, ok := host.FirstMesh(objects)
		if !ok {
			stats.Frames++
			stats.Discarded++
			g.logger.Printf("no mesh object found in %s, skipping frame %d", modelPath, stats.Frames)
			continue
		}

		if err := g.host.SetTransform(ctx, mesh, g.sampler.ObjectPose()); err != nil {
			return stats, fmt.Errorf("failed to place object: %w", err)
		}
		if err := g.host.SetCamera(ctx, g.sampler.CameraPose()); err != nil {
			return stats, fmt.Errorf("failed to place camera: %w", err)
		}
		if err := g.refreshLights(ctx, &sunUp); err != nil {
			return stats, fmt.Errorf("failed to refresh lights: %w", err)
		}

		background, err := g.host.BindBackground(ctx, g.sampler.Pick(backgrounds))
		if err != nil {
			return stats, fmt.Errorf("failed to bind background: %w", err)
		}

		points, err := g.host.ProjectVertices(ctx, mesh)
		if err != nil {
			g.host.ReleaseBackground(ctx, background)
			return stats, fmt.Errorf("failed to project vertices: %w", err)
		}

		box, visible := labels.FromPoints(points)
		if !visible {
			stats.Frames++
			stats.Discarded++
			g.logger.Printf("object not visible in frame %d, trying new randomisation", stats.Frames)
			if err := g.host.ReleaseBackground(ctx, background); err != nil {
				return stats, fmt.Errorf("failed to release background: %w", err)
			}
			continue
		}

		base := utils.FrameBaseName(stats.Frames)
		imagePath := filepath.Join(imageDir, base+".png")
		if err := g.host.Render(ctx, imagePath); err != nil {
			g.host.ReleaseBackground(ctx, background)
			return stats, fmt.Errorf("failed to render %s: %w", imagePath, err)
		}

		labelPath := filepath.Join(labelDir, base+".txt")
		if err := labels.WriteFile(labelPath, g.config.ClassID, box); err != nil {
			g.host.ReleaseBackground(ctx, background)
			return stats, err
		}

		if err := g.host.ReleaseBackground(ctx, background); err != nil {
			return stats, fmt.Errorf("failed to release background: %w", err)
		}

		stats.Frames++
		stats.Accepted++
		g.logger.Printf("rendered %d/%d -> %s.png", stats.Accepted, g.config.NumImages, base)
	}

	g.logger.Printf("done: %d images stored in %s", stats.Accepted, g.config.OutputDir)
	return stats, nil
}

// refreshLights removes last frame's fill light and adds a fresh one.
// The sun is created on the first frame only; its energy draw must not
// repeat on later frames or the seeded sequence would drift.
func (g *Generator) refreshLights(ctx context.Context, sunUp *bool) error {
	if err := g.host.RemovePointLights(ctx); err != nil {
		return err
	}

	if !*sunUp {
		sun := sunPose
		sun.Energy = g.sampler.SunEnergy()
		if err := g.host.EnsureSunLight(ctx, sun); err != nil {
			return err
		}
		*sunUp = true
	}

	return g.host.AddPointLight(ctx, g.sampler.PointLight())
}
