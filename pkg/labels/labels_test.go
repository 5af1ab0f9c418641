package labels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/menta2k/synthgen/pkg/types"
)

func pt(x, y, z float64) types.ProjectedPoint {
	return types.ProjectedPoint{X: x, Y: y, Z: z}
}

func TestVisibleExtentFiltersFrustum(t *testing.T) {
	points := []types.ProjectedPoint{
		pt(0.2, 0.3, 1),    // visible
		pt(0.6, 0.7, 2),    // visible
		pt(1.4, 0.5, 1),    // off-screen right
		pt(-0.1, 0.5, 1),   // off-screen left
		pt(0.5, 0.5, -0.5), // behind the camera
	}

	ext, visible := VisibleExtent(points)
	if !visible {
		t.Fatal("expected a visible extent")
	}

	if ext.XMin != 0.2 || ext.XMax != 0.6 {
		t.Errorf("x extent = [%v, %v], want [0.2, 0.6]", ext.XMin, ext.XMax)
	}
	if ext.YMin != 0.3 || ext.YMax != 0.7 {
		t.Errorf("y extent = [%v, %v], want [0.3, 0.7]", ext.YMin, ext.YMax)
	}
}

func TestVisibleExtentEmpty(t *testing.T) {
	cases := [][]types.ProjectedPoint{
		nil,
		{pt(1.5, 0.5, 1), pt(-0.5, 0.5, 1)},  // all off-screen
		{pt(0.5, 0.5, -1), pt(0.4, 0.4, 0)},  // all behind or at the camera
	}

	for i, points := range cases {
		if _, visible := VisibleExtent(points); visible {
			t.Errorf("case %d: expected no visible extent", i)
		}
	}
}

func TestBoxVerticalFlip(t *testing.T) {
	// Symmetric span: the flip is invisible
	box, ok := FromPoints([]types.ProjectedPoint{pt(0.1, 0.2, 1), pt(0.3, 0.8, 1)})
	if !ok {
		t.Fatal("expected a visible box")
	}
	if !closeTo(box.Cy, 0.5) {
		t.Errorf("cy = %v, want 0.5", box.Cy)
	}

	// Asymmetric span: camera-space midpoint 0.3 must become 0.7
	box, ok = FromPoints([]types.ProjectedPoint{pt(0.1, 0.2, 1), pt(0.3, 0.4, 1)})
	if !ok {
		t.Fatal("expected a visible box")
	}
	if !closeTo(box.Cy, 0.7) {
		t.Errorf("cy = %v, want 0.7 (flipped from 0.3)", box.Cy)
	}
	if !closeTo(box.Cx, 0.2) {
		t.Errorf("cx = %v, want 0.2", box.Cx)
	}
	if !closeTo(box.W, 0.2) || !closeTo(box.H, 0.2) {
		t.Errorf("size = %vx%v, want 0.2x0.2", box.W, box.H)
	}
}

func TestBoxClampsOvershoot(t *testing.T) {
	// Numerical overshoot at the frustum edge
	ext := Extent{XMin: -0.05, XMax: 1.02, YMin: 0.1, YMax: 0.9}
	box := ext.Box()

	for name, v := range map[string]float64{"cx": box.Cx, "cy": box.Cy, "w": box.W, "h": box.H} {
		if v < 0 || v > 1 {
			t.Errorf("%s = %v, want within [0, 1]", name, v)
		}
	}
	if box.W != 1 {
		t.Errorf("w = %v, want clamped to 1", box.W)
	}
}

func TestFormat(t *testing.T) {
	line := Format(0, types.Box{Cx: 0.5, Cy: 0.25, W: 0.125, H: 1})
	want := "0 0.500000 0.250000 0.125000 1.000000"
	if line != want {
		t.Errorf("Format() = %q, want %q", line, want)
	}

	line = Format(7, types.Box{})
	if !strings.HasPrefix(line, "7 ") {
		t.Errorf("Format() = %q, want class prefix %q", line, "7 ")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synth_00000.txt")
	box := types.Box{Cx: 0.5, Cy: 0.5, W: 0.2, H: 0.3}

	if err := WriteFile(path, 3, box); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read label file: %v", err)
	}

	want := "3 0.500000 0.500000 0.200000 0.300000\n"
	if string(data) != want {
		t.Errorf("label file = %q, want %q", string(data), want)
	}
}

func closeTo(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
