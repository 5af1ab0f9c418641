// Package labels derives normalized bounding-box labels from projected
// mesh vertices and writes them in the single-line detection format
// "<class> <cx> <cy> <w> <h>".
package labels

import (
	"fmt"
	"os"

	"github.com/menta2k/synthgen/pkg/types"
)

// Extent is the axis-aligned extent of the visible projected points in
// normalized camera space
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// VisibleExtent filters the projected points to those inside the
// camera frustum (x and y in [0,1], positive depth) and returns their
// extent. The second result is false when no point is visible, which
// is the sole visibility test: frustum membership and forward depth,
// not occlusion.
func VisibleExtent(points []types.ProjectedPoint) (Extent, bool) {
	var ext Extent
	visible := false

	for _, p := range points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || p.Z <= 0 {
			continue
		}
		if !visible {
			ext = Extent{XMin: p.X, XMax: p.X, YMin: p.Y, YMax: p.Y}
			visible = true
			continue
		}
		if p.X < ext.XMin {
			ext.XMin = p.X
		}
		if p.X > ext.XMax {
			ext.XMax = p.X
		}
		if p.Y < ext.YMin {
			ext.YMin = p.Y
		}
		if p.Y > ext.YMax {
			ext.YMax = p.Y
		}
	}

	return ext, visible
}

// Box converts the extent to a center-based box. Camera-space y grows
// upward while label-space y grows downward, so the vertical center is
// flipped. All four values are clamped to [0,1] to absorb floating
// point overshoot at the frustum edge.
func (e Extent) Box() types.Box {
	return types.Box{
		Cx: clamp((e.XMin+e.XMax)/2, 0, 1),
		Cy: clamp(1-(e.YMin+e.YMax)/2, 0, 1),
		W:  clamp(e.XMax-e.XMin, 0, 1),
		H:  clamp(e.YMax-e.YMin, 0, 1),
	}
}

// FromPoints derives the label box straight from projected points.
// The second result is false when the object is not visible.
func FromPoints(points []types.ProjectedPoint) (types.Box, bool) {
	ext, visible := VisibleExtent(points)
	if !visible {
		return types.Box{}, false
	}
	return ext.Box(), true
}

// Format renders a label line without the trailing newline
func Format(classID int, box types.Box) string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", classID, box.Cx, box.Cy, box.W, box.H)
}

// WriteFile writes a single-line label file
func WriteFile(path string, classID int, box types.Box) error {
	line := Format(classID, box) + "\n"
	if err := os.WriteFile(path, []byte(line), 0644); err != nil {
		return fmt.Errorf("failed to write label file: %w", err)
	}
	return nil
}

// clamp ensures a value is within the given bounds
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
