// Package texture applies an image texture to a model's first mesh
// and exports the result as a packed model file, all through the
// rendering host.
package texture

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/menta2k/synthgen/internal/utils"
	"github.com/menta2k/synthgen/pkg/host"
)

// Job describes one texture-and-pack operation
type Job struct {
	ModelPath   string
	TexturePath string
	OutputPath  string
}

// Apply imports the model, binds the texture as the base color of the
// first mesh found, and exports the packed result to Job.OutputPath
func Apply(ctx context.Context, h host.RenderHost, job Job) error {
	if !utils.FileExists(job.TexturePath) {
		return fmt.Errorf("texture file not found at %s", job.TexturePath)
	}

	format, err := host.FormatFromPath(job.ModelPath)
	if err != nil {
		return err
	}

	objects, err := h.ImportModel(ctx, job.ModelPath, format)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", job.ModelPath, err)
	}

	mesh, ok := host.FirstMesh(objects)
	if !ok {
		return fmt.Errorf("no mesh object found in %s", job.ModelPath)
	}

	if err := h.ApplyBaseColorTexture(ctx, mesh, job.TexturePath); err != nil {
		return fmt.Errorf("failed to apply texture: %w", err)
	}

	outFormat, err := host.FormatFromPath(job.OutputPath)
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(filepath.Dir(job.OutputPath)); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := h.ExportModel(ctx, mesh, job.OutputPath, outFormat); err != nil {
		return fmt.Errorf("failed to export %s: %w", job.OutputPath, err)
	}

	return nil
}
