// Package host defines the rendering-host capability set the dataset
// pipeline is written against. A rendering host owns everything that
// requires a 3D engine: scene graph mutation, model import/export,
// camera projection, compositing and rendering. The generation loop
// only ever talks to this interface, so any engine with these
// capabilities can be plugged in behind it.
package host

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/menta2k/synthgen/pkg/types"
)

// ObjectType classifies a scene object
type ObjectType int

const (
	// ObjectMesh carries renderable vertex/face geometry
	ObjectMesh ObjectType = iota
	// ObjectEmpty is a non-renderable grouping object
	ObjectEmpty
	// ObjectCamera is the scene camera
	ObjectCamera
	// ObjectLight is any light
	ObjectLight
)

func (t ObjectType) String() string {
	switch t {
	case ObjectMesh:
		return "mesh"
	case ObjectEmpty:
		return "empty"
	case ObjectCamera:
		return "camera"
	case ObjectLight:
		return "light"
	default:
		return "unknown"
	}
}

// Object is a handle to a scene object owned by the host
type Object struct {
	Name string
	Type ObjectType
}

// ModelFormat is the interchange format tag passed to ImportModel/ExportModel
type ModelFormat string

// FormatGLTF covers both .glb and .gltf files
const FormatGLTF ModelFormat = "gltf"

// FormatFromPath derives the model format tag from a file extension.
// Anything other than glTF is unsupported and aborts the run.
func FormatFromPath(path string) (ModelFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return FormatGLTF, nil
	default:
		return "", fmt.Errorf("unsupported model format: %s", path)
	}
}

// RenderSettings configures the host's renderer once per run
type RenderSettings struct {
	Width   int
	Height  int
	Samples int
	// TransparentFilm renders the foreground layer with alpha so the
	// bound background shows through the compositor
	TransparentFilm bool
}

// CameraPose positions the camera and tells the host where to aim it.
// Orientation derivation (track -Z, up Y) is the host's job.
type CameraPose struct {
	Location    types.Vec3
	Target      types.Vec3
	FocalLength float64
}

// SunLight describes the persistent directional light
type SunLight struct {
	Energy   float64
	Location types.Vec3
	Rotation types.Vec3
}

// PointLight describes the per-frame fill light
type PointLight struct {
	Energy   float64
	Location types.Vec3
}

// Background is a handle to a bound backdrop image resource
type Background struct {
	Name string
	Path string
}

// RenderHost is the abstract 3D engine the pipeline drives.
//
// All methods take a context because a real host call (import, render,
// evaluation) is a blocking round trip into an external engine.
type RenderHost interface {
	// Configure applies renderer settings for the run
	Configure(ctx context.Context, settings RenderSettings) error

	// ResetScene removes every object except the camera and lights
	ResetScene(ctx context.Context) error

	// ImportModel loads a model file and returns the created objects.
	// The result may contain a parent empty plus children; callers must
	// walk it to find mesh geometry.
	ImportModel(ctx context.Context, path string, format ModelFormat) ([]Object, error)

	// SetTransform applies location, rotation and scale to an object
	SetTransform(ctx context.Context, obj Object, t types.Transform) error

	// SetCamera positions the camera, aims it at the target and sets
	// the focal length
	SetCamera(ctx context.Context, pose CameraPose) error

	// EnsureSunLight creates the directional light if it does not
	// exist; an existing sun is left untouched
	EnsureSunLight(ctx context.Context, sun SunLight) error

	// RemovePointLights deletes all point lights from the scene
	RemovePointLights(ctx context.Context) error

	// AddPointLight adds a point light to the scene
	AddPointLight(ctx context.Context, light PointLight) error

	// BindBackground loads an image and binds it as the compositing
	// backdrop, scaled to the render resolution
	BindBackground(ctx context.Context, path string) (Background, error)

	// ReleaseBackground frees a bound backdrop resource
	ReleaseBackground(ctx context.Context, bg Background) error

	// ProjectVertices evaluates the scene and returns every vertex of
	// the object projected into normalized camera space
	ProjectVertices(ctx context.Context, obj Object) ([]types.ProjectedPoint, error)

	// Render produces a composited still image at the given path
	Render(ctx context.Context, outPath string) error

	// ApplyBaseColorTexture binds an image file as the base color of
	// the object's first material
	ApplyBaseColorTexture(ctx context.Context, obj Object, imagePath string) error

	// ExportModel writes the object as a packed model file
	ExportModel(ctx context.Context, obj Object, path string, format ModelFormat) error
}

// FirstMesh walks a set of imported objects and returns the first one
// carrying mesh geometry. Imports may yield a parent empty before the
// mesh children, so index 0 cannot be assumed.
func FirstMesh(objects []Object) (Object, bool) {
	for _, obj := range objects {
		if obj.Type == ObjectMesh {
			return obj, true
		}
	}
	return Object{}, false
}
