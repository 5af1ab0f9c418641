// Package synthgen generates synthetic object-detection datasets by
// driving a 3D rendering host.
//
// Each frame, the pipeline builds a randomized scene (an imported
// model with a sampled pose, a camera placed on a sphere around the
// origin, a refreshed light rig and a random backdrop), asks the host
// to project the object's vertices into camera space, derives the
// normalized bounding box, and renders the composited image next to a
// single-line label file. Frames where the object ends up off-screen
// are discarded and retried until the target count is reached.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		"github.com/menta2k/synthgen"
//		"github.com/menta2k/synthgen/pkg/generator"
//		"github.com/menta2k/synthgen/pkg/preview"
//	)
//
//	func main() {
//		cfg := generator.DefaultConfig()
//		cfg.Models = []string{"models/bottle.glb"}
//		cfg.BackgroundsDir = "backgrounds"
//		cfg.OutputDir = "output"
//		cfg.NumImages = 100
//
//		pipeline := synthgen.NewWithConfig(cfg, preview.New())
//		stats, err := pipeline.Generate(context.Background())
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("accepted %d of %d frames", stats.Accepted, stats.Frames)
//	}
//
// The package consists of four main components:
//
// 1. Host (pkg/host): the rendering-host capability interface every 3D
// engine adapter implements
// 2. Sampler (pkg/sampler): the seeded randomization policy for poses,
// camera and lighting
// 3. Labels (pkg/labels): bounding-box derivation from projected
// vertices and label file output
// 4. Generator (pkg/generator): the frame loop tying them together
//
// Supporting packages cover background downloading (pkg/fetch),
// texture application and packed export (pkg/texture), and an
// in-process preview host (pkg/preview) for running the pipeline
// without an external engine.
//
// Everything that needs real 3D work (scene mutation, model
// import/export, projection, compositing, rendering) goes through
// host.RenderHost, so the generation logic is testable against a
// scripted host and engine adapters stay swappable.
package synthgen

import (
	"context"

	"github.com/menta2k/synthgen/pkg/fetch"
	"github.com/menta2k/synthgen/pkg/generator"
	"github.com/menta2k/synthgen/pkg/host"
	"github.com/menta2k/synthgen/pkg/texture"
)

// Version of the synthgen library
const Version = "1.0.0"

// Pipeline provides a high-level interface to dataset generation and
// the surrounding utility operations
type Pipeline struct {
	config generator.Config
	host   host.RenderHost
}

// New creates a Pipeline with the default configuration
func New(h host.RenderHost) *Pipeline {
	return NewWithConfig(generator.DefaultConfig(), h)
}

// NewWithConfig creates a Pipeline with a custom configuration
func NewWithConfig(config generator.Config, h host.RenderHost) *Pipeline {
	return &Pipeline{
		config: config,
		host:   h,
	}
}

// Config returns the pipeline configuration
func (p *Pipeline) Config() generator.Config {
	return p.config
}

// Generate runs the generation loop until the configured number of
// frames has been accepted
func (p *Pipeline) Generate(ctx context.Context) (generator.Stats, error) {
	return generator.New(p.config, p.host).Run(ctx)
}

// ApplyTexture binds a texture image to a model's first mesh and
// exports the packed result
func (p *Pipeline) ApplyTexture(ctx context.Context, job texture.Job) error {
	return texture.Apply(ctx, p.host, job)
}

// DownloadBackgrounds fetches background images into the configured
// backgrounds directory and returns the number saved
func (p *Pipeline) DownloadBackgrounds(ctx context.Context, urls []string) (int, error) {
	return fetch.New().DownloadAll(ctx, urls, p.config.BackgroundsDir)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
