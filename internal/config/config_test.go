package config

import (
	"path/filepath"
	"testing"

	"github.com/menta2k/synthgen/pkg/types"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	cfg := Default()
	cfg.Camera.Radius = types.Range{Min: 1.2, Max: 0.6}

	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for min > max")
	}
}

func TestValidateRejectsBadResolution(t *testing.T) {
	cfg := Default()
	cfg.Scene.Width = 0

	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for zero width")
	}
}

func TestValidateRejectsNonPositiveScale(t *testing.T) {
	cfg := Default()
	cfg.Object.Scale = types.Range{Min: -1, Max: 1}

	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a non-positive scale")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Scene.Models = []string{"models/a.glb", "models/b.glb"}
	cfg.Scene.Seed = 99
	cfg.Light.Power = types.Range{Min: 500, Max: 900}

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if len(loaded.Scene.Models) != 2 || loaded.Scene.Models[0] != "models/a.glb" {
		t.Errorf("models did not survive the round trip: %v", loaded.Scene.Models)
	}
	if loaded.Scene.Seed != 99 {
		t.Errorf("seed = %d, want 99", loaded.Scene.Seed)
	}
	if loaded.Light.Power != (types.Range{Min: 500, Max: 900}) {
		t.Errorf("light power = %v, want [500, 900]", loaded.Light.Power)
	}
}

func TestGeneratorMapping(t *testing.T) {
	cfg := Default()
	cfg.Scene.Models = []string{"m.glb"}
	cfg.Scene.BackgroundsDir = "bg"
	cfg.Scene.NumImages = 12
	cfg.Scene.ClassID = 4

	gen := cfg.Generator()

	if gen.NumImages != 12 || gen.ClassID != 4 || gen.BackgroundsDir != "bg" {
		t.Errorf("scene fields lost in mapping: %+v", gen)
	}
	if gen.Sampling.Scale != cfg.Object.Scale {
		t.Errorf("scale range lost in mapping")
	}
	if gen.Sampling.Radius != cfg.Camera.Radius || gen.Sampling.Focal != cfg.Camera.Focal {
		t.Errorf("camera ranges lost in mapping")
	}
	if gen.Sampling.Power != cfg.Light.Power {
		t.Errorf("light range lost in mapping")
	}
}
