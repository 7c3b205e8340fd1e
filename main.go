package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lumenray/tracer/pkg/integrator"
	"github.com/lumenray/tracer/pkg/rtlog"
	"github.com/lumenray/tracer/pkg/scene"
	"github.com/lumenray/tracer/pkg/scheduler"
)

// options holds the values bound to the root command's flags.
type options struct {
	sceneName     string
	integratorKey string
	samples       int
	maxDepth      int
	workers       int
	output        string
	cpuProfile    string
	verbose       bool
	listScenes    bool
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tracer",
		Short: "Offline physically-based Monte Carlo image renderer",
		Long: `tracer renders a scene with either a path tracer or a bidirectional
path tracer and writes the result as a PNG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.sceneName, "scene", "s", "default", "built-in scene name or .pbrt file path")
	flags.StringVarP(&opts.integratorKey, "integrator", "i", "path-tracing", "integrator: 'path-tracing' or 'bdpt'")
	flags.IntVar(&opts.samples, "samples", 0, "override samples per pixel (0 = scene default)")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "override maximum path depth (0 = scene default)")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "parallel workers (0 = auto-detect CPU count)")
	flags.StringVarP(&opts.output, "output", "o", "", "output PNG path (default: output/<scene>/render_<timestamp>.png)")
	flags.StringVar(&opts.cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug-level logging")
	flags.BoolVar(&opts.listScenes, "list-scenes", false, "list built-in scenes and any .pbrt files under scenes/, then exit")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	root.SetContext(ctx)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	if opts.listScenes {
		return printScenes(os.Stdout)
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	level := zerolog.InfoLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	logger := rtlog.New(os.Stderr, level)

	sceneObj, err := buildScene(opts.sceneName)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	if opts.samples > 0 {
		sceneObj.Config.SamplesPerPixel = opts.samples
	}
	if opts.maxDepth > 0 {
		sceneObj.Config.MaxDepth = opts.maxDepth
	}

	renderScene := sceneObj.Build()

	sched := scheduler.NewScheduler(nil, sceneObj.Camera, sceneObj.Config, opts.workers)
	sched.Logger = logger

	if err := sched.Prepare(); err != nil {
		return fmt.Errorf("prepare scheduler: %w", err)
	}

	switch opts.integratorKey {
	case "bdpt":
		sched.Integrator = integrator.NewBDPT(renderScene, sched.Buffer.UpdatePixelAdd)
	case "path-tracing":
		sched.Integrator = integrator.NewPathTracer(renderScene)
	default:
		return fmt.Errorf("unknown integrator %q (want 'path-tracing' or 'bdpt')", opts.integratorKey)
	}

	startTime := time.Now()
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Printf("Render completed in %v", time.Since(startTime))

	outputPath := opts.output
	if outputPath == "" {
		outputPath = defaultOutputPath(opts.sceneName)
	}
	if err := saveImage(sched.FrameBuffer().ToImage(), outputPath); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	logger.Printf("Render saved to %s", outputPath)
	return nil
}

// printScenes lists every built-in scene name and any .pbrt files discovered
// under scenes/, grouped the way scene.ListAllScenes groups them, for the
// --list-scenes flag.
func printScenes(w io.Writer) error {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		return fmt.Errorf("list scenes: %w", err)
	}
	for _, group := range scenes.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, s := range group.Scenes {
			if s.Description != "" {
				fmt.Fprintf(w, "  %-20s %s\n", s.ID, s.Description)
			} else {
				fmt.Fprintf(w, "  %s\n", s.ID)
			}
		}
	}
	return nil
}

// buildScene resolves sceneName to a Scene: a .pbrt file path (direct or
// under scenes/) takes priority, falling back to the built-in procedural
// scenes, matching the teacher's createScene/tryLoadPBRTScene dispatch.
func buildScene(sceneName string) (*scene.Scene, error) {
	if pbrtPath, ok := resolvePBRTPath(sceneName); ok {
		return scene.NewPBRTScene(pbrtPath)
	}

	switch sceneName {
	case "cornell":
		return scene.NewCornellScene(), nil
	case "spheregrid":
		return scene.NewSphereGridScene(), nil
	case "trianglemesh":
		return scene.NewTriangleMeshScene(32), nil
	case "default":
		return scene.NewDefaultScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", sceneName)
	}
}

// resolvePBRTPath tries sceneName itself, scenes/<name>.pbrt, and
// scenes/<name>, returning the first path that exists and ends in .pbrt.
func resolvePBRTPath(sceneName string) (string, bool) {
	candidates := []string{
		sceneName,
		filepath.Join("scenes", sceneName+".pbrt"),
		filepath.Join("scenes", sceneName),
	}
	for _, path := range candidates {
		if !strings.HasSuffix(path, ".pbrt") {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func defaultOutputPath(sceneName string) string {
	dirName := sceneName
	if strings.Contains(sceneName, "/") || strings.HasSuffix(sceneName, ".pbrt") {
		dirName = strings.TrimSuffix(filepath.Base(sceneName), ".pbrt")
	}
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", dirName, fmt.Sprintf("render_%s.png", timestamp))
}

// saveImage writes img as a PNG to filename, creating parent directories
// as needed, matching the teacher's saveImageToFile.
func saveImage(img *image.RGBA, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
