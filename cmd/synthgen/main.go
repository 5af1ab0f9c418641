package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/menta2k/synthgen/internal/config"
	"github.com/menta2k/synthgen/pkg/generator"
	"github.com/menta2k/synthgen/pkg/host"
	"github.com/menta2k/synthgen/pkg/preview"
)

func main() {
	var configPath, models, backgrounds, out, backend, dumpConfig string
	var n, samples, classID int
	var seed int64

	flag.StringVar(&configPath, "config", "", "JSON configuration file")
	flag.StringVar(&models, "models", "", "comma-separated model paths (glb/gltf), overrides config")
	flag.StringVar(&backgrounds, "backgrounds", "", "background images directory, overrides config")
	flag.StringVar(&out, "out", "", "output directory, overrides config")
	flag.IntVar(&n, "n", 0, "number of images to generate, overrides config")
	flag.IntVar(&samples, "samples", 0, "render sample count, overrides config")
	flag.IntVar(&classID, "class", -1, "label class id, overrides config")
	flag.Int64Var(&seed, "seed", -1, "random seed, overrides config")
	flag.StringVar(&backend, "backend", "preview", "rendering host backend")
	flag.StringVar(&dumpConfig, "dumpconfig", "", "write the default configuration to this path and exit")

	flag.Parse()

	if dumpConfig != "" {
		if err := config.Default().SaveToFile(dumpConfig); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", dumpConfig)
		return
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	if models != "" {
		cfg.Scene.Models = strings.Split(models, ",")
	}
	if backgrounds != "" {
		cfg.Scene.BackgroundsDir = backgrounds
	}
	if out != "" {
		cfg.Scene.OutputDir = out
	}
	if n > 0 {
		cfg.Scene.NumImages = n
	}
	if samples > 0 {
		cfg.Scene.Samples = samples
	}
	if classID >= 0 {
		cfg.Scene.ClassID = classID
	}
	if seed >= 0 {
		cfg.Scene.Seed = seed
	}

	if len(cfg.Scene.Models) == 0 {
		log.Fatalf("usage: %s -models model.glb[,model2.glb] -backgrounds dir [-out dir] [-n count] [-seed n] [-backend preview]",
			filepath.Base(os.Args[0]))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var renderHost host.RenderHost
	switch backend {
	case "preview":
		renderHost = preview.New()
	default:
		log.Fatalf("Unknown backend: %s (only 'preview' is built in; engine adapters implement host.RenderHost)", backend)
	}

	gen := generator.New(cfg.Generator(), renderHost)
	stats, err := gen.Run(context.Background())
	if err != nil {
		log.Fatalf("generation failed after %d accepted frames: %v", stats.Accepted, err)
	}

	log.Printf("generated %d images over %d frames (%d discarded) in %s",
		stats.Accepted, stats.Frames, stats.Discarded, cfg.Scene.OutputDir)
}
