// Package preview provides an in-process rendering host for previews
// and tests. It performs real image work: backgrounds are decoded
// (with a WebP fallback), scaled to the render resolution and
// composited under a placeholder footprint. It is not a 3D
// engine: model import yields stub geometry and vertex projection is a
// deterministic approximation derived from object scale, camera
// distance and focal length. It exists so the pipeline can run end to
// end without an external engine; real engines plug in behind
// host.RenderHost.
package preview

import (
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/synthgen/pkg/host"
	"github.com/menta2k/synthgen/pkg/types"
)

type sceneObject struct {
	object    host.Object
	transform types.Transform
	texture   string
}

type boundBackground struct {
	handle host.Background
	image  image.Image
}

// Host is an in-process host.RenderHost implementation
type Host struct {
	settings   host.RenderSettings
	objects    []*sceneObject
	camera     host.CameraPose
	hasCamera  bool
	sun        *host.SunLight
	fills      []host.PointLight
	background *boundBackground
	bindCount  int
}

// New creates a preview host with a 640x640 render resolution
func New() *Host {
	return &Host{
		settings: host.RenderSettings{Width: 640, Height: 640, Samples: 1},
	}
}

// Configure applies renderer settings
func (h *Host) Configure(ctx context.Context, settings host.RenderSettings) error {
	if settings.Width < 1 || settings.Height < 1 {
		return fmt.Errorf("invalid render resolution %dx%d", settings.Width, settings.Height)
	}
	h.settings = settings
	return nil
}

// ResetScene drops every object; the camera and lights persist
func (h *Host) ResetScene(ctx context.Context) error {
	h.objects = nil
	return nil
}

// ImportModel returns stub geometry for an existing model file: a
// parent empty plus one mesh child, named after the file. The file is
// not parsed.
func (h *Host) ImportModel(ctx context.Context, path string, format host.ModelFormat) ([]host.Object, error) {
	if format != host.FormatGLTF {
		return nil, fmt.Errorf("unsupported model format: %s", format)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parent := host.Object{Name: base, Type: host.ObjectEmpty}
	mesh := host.Object{Name: base + ".mesh", Type: host.ObjectMesh}

	h.objects = append(h.objects, &sceneObject{
		object: mesh,
		transform: types.Transform{
			Scale: types.Vec3{X: 1, Y: 1, Z: 1},
		},
	})

	return []host.Object{parent, mesh}, nil
}

// SetTransform stores an object's placement
func (h *Host) SetTransform(ctx context.Context, obj host.Object, t types.Transform) error {
	so, err := h.find(obj)
	if err != nil {
		return err
	}
	so.transform = t
	return nil
}

// SetCamera stores the camera pose
func (h *Host) SetCamera(ctx context.Context, pose host.CameraPose) error {
	if pose.FocalLength <= 0 {
		return fmt.Errorf("focal length must be positive")
	}
	h.camera = pose
	h.hasCamera = true
	return nil
}

// EnsureSunLight creates the sun if absent; an existing sun is kept
// untouched
func (h *Host) EnsureSunLight(ctx context.Context, sun host.SunLight) error {
	if h.sun == nil {
		h.sun = &sun
	}
	return nil
}

// RemovePointLights deletes all point lights
func (h *Host) RemovePointLights(ctx context.Context) error {
	h.fills = nil
	return nil
}

// AddPointLight adds a point light
func (h *Host) AddPointLight(ctx context.Context, light host.PointLight) error {
	h.fills = append(h.fills, light)
	return nil
}

// BindBackground loads an image and scales it to the render
// resolution. Only one background can be bound at a time; the caller
// must release it before binding the next one.
func (h *Host) BindBackground(ctx context.Context, path string) (host.Background, error) {
	if h.background != nil {
		return host.Background{}, fmt.Errorf("background %s is still bound", h.background.handle.Name)
	}

	img, err := loadImage(path)
	if err != nil {
		return host.Background{}, err
	}

	h.bindCount++
	bg := &boundBackground{
		handle: host.Background{
			Name: fmt.Sprintf("bg-%d", h.bindCount),
			Path: path,
		},
		image: imaging.Resize(img, h.settings.Width, h.settings.Height, imaging.Lanczos),
	}
	h.background = bg
	return bg.handle, nil
}

// ReleaseBackground frees the bound backdrop
func (h *Host) ReleaseBackground(ctx context.Context, bg host.Background) error {
	if h.background == nil || h.background.handle.Name != bg.Name {
		return fmt.Errorf("background %s is not bound", bg.Name)
	}
	h.background = nil
	return nil
}

// ProjectVertices returns a deterministic footprint for the object:
// its center and corner points in normalized camera space, sized by
// object scale, focal length and camera distance. This is an
// approximation for previews, not a real projection.
func (h *Host) ProjectVertices(ctx context.Context, obj host.Object) ([]types.ProjectedPoint, error) {
	so, err := h.find(obj)
	if err != nil {
		return nil, err
	}
	if !h.hasCamera {
		return nil, fmt.Errorf("camera not set")
	}

	u, v, half, dist := h.footprint(so)

	points := []types.ProjectedPoint{{X: u, Y: v, Z: dist}}
	for _, du := range []float64{-half, half} {
		for _, dv := range []float64{-half, half} {
			points = append(points, types.ProjectedPoint{X: u + du, Y: v + dv, Z: dist})
		}
	}
	return points, nil
}

// Render composites the placeholder footprints over the bound
// background and writes the result. The output format follows the file
// extension (png, jpg or webp).
func (h *Host) Render(ctx context.Context, outPath string) error {
	if h.background == nil {
		return fmt.Errorf("no background bound")
	}
	if !h.hasCamera {
		return fmt.Errorf("camera not set")
	}

	canvas := imaging.Clone(h.background.image)
	for _, so := range h.objects {
		h.drawFootprint(canvas, so)
	}

	return saveImage(canvas, outPath)
}

// ApplyBaseColorTexture records the texture bound to an object
func (h *Host) ApplyBaseColorTexture(ctx context.Context, obj host.Object, imagePath string) error {
	so, err := h.find(obj)
	if err != nil {
		return err
	}
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("failed to open texture: %w", err)
	}
	so.texture = imagePath
	return nil
}

// ExportModel is not supported: the preview host has no real geometry
// to pack
func (h *Host) ExportModel(ctx context.Context, obj host.Object, path string, format host.ModelFormat) error {
	return fmt.Errorf("preview host cannot export models")
}

func (h *Host) find(obj host.Object) (*sceneObject, error) {
	for _, so := range h.objects {
		if so.object.Name == obj.Name {
			return so, nil
		}
	}
	return nil, fmt.Errorf("unknown object: %s", obj.Name)
}

// footprint places the object in normalized camera space. The center
// shifts with the object's offset from the aim target, the size grows
// with scale and focal length and shrinks with camera distance.
func (h *Host) footprint(so *sceneObject) (u, v, half, dist float64) {
	t := so.transform

	dx := h.camera.Location.X - t.Location.X
	dy := h.camera.Location.Y - t.Location.Y
	dz := h.camera.Location.Z - t.Location.Z
	dist = math.Sqrt(dx*dx + dy*dy + dz*dz)
	if dist < 1e-6 {
		dist = 1e-6
	}

	focalFactor := h.camera.FocalLength / 50.0

	u = 0.5 + 0.5*(t.Location.X-h.camera.Target.X)*focalFactor/dist
	v = 0.5 + 0.5*(t.Location.Y-h.camera.Target.Y)*focalFactor/dist
	half = 0.12 * t.Scale.X * focalFactor / dist
	return u, v, half, dist
}

// drawFootprint fills the object's on-screen footprint with a flat
// color so preview output shows where the label box will land
func (h *Host) drawFootprint(canvas *image.NRGBA, so *sceneObject) {
	u, v, half, _ := h.footprint(so)
	w, hgt := h.settings.Width, h.settings.Height

	// Camera-space y grows upward; image rows grow downward
	x0 := int((u-half)*float64(w) + 0.5)
	x1 := int((u+half)*float64(w) + 0.5)
	y0 := int((1-(v+half))*float64(hgt) + 0.5)
	y1 := int((1-(v-half))*float64(hgt) + 0.5)

	rect := image.Rect(x0, y0, x1, y1).Intersect(canvas.Bounds())
	if rect.Empty() {
		return
	}

	draw.Draw(canvas, rect, image.NewUniform(colorFor(so.object.Name)), image.Point{}, draw.Over)
}

// colorFor derives a stable placeholder color from an object name
func colorFor(name string) color.NRGBA {
	hash := fnv.New32a()
	hash.Write([]byte(name))
	sum := hash.Sum32()
	return color.NRGBA{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: 255,
	}
}

// loadImage loads an image from a file path with WebP support
func loadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// saveImage writes an image in the format implied by the extension
func saveImage(img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Lossless: true})
	default: // png/jpg by extension
		return imaging.Save(img, path)
	}
}
