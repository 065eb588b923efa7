package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"glmesh/internal/config"
	"glmesh/internal/graphics/device"
	"glmesh/internal/input"
	"glmesh/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

const slowFrame = 25 * time.Millisecond

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "viewer YAML file (default scene when empty)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath); err != nil {
		slog.Error("meshview failed", "error", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run(configPath string) error {
	cfg := config.DefaultViewer()
	dir := "."
	if configPath != "" {
		var err error
		if cfg, err = config.LoadViewer(configPath); err != nil {
			return err
		}
		dir = filepath.Dir(configPath)
	}
	if err := cfg.Apply(); err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	dev, err := device.NewGL()
	if err != nil {
		return err
	}
	slog.Info("OpenGL ready", "version", dev.Version())

	width, height := window.GetFramebufferSize()
	scene, err := setupScene(dev, cfg, dir, width, height)
	if err != nil {
		return err
	}
	scene.Renderer.UpdateViewport(width, height)

	// Signals stop the loop; the handler waits until GPU resources are
	// released on this thread.
	var quit atomic.Bool
	done := make(chan struct{})
	closer.Bind(func() {
		quit.Store(true)
		<-done
	})
	defer close(done)
	defer scene.Dispose()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		scene.Renderer.UpdateViewport(w, h)
	})
	im := input.NewManager()
	im.SetKeyCallback(window)

	limiter := NewFPSLimiter()
	paused := false
	last := time.Now()
	for !window.ShouldClose() && !quit.Load() {
		profiling.ResetFrame()
		frameStart := time.Now()
		dt := frameStart.Sub(last).Seconds()
		last = frameStart

		paused = handleInput(im, window, scene, cfg.Camera.Orbit, dt, paused)
		if paused {
			dt = 0
		}
		// Per-model failures are logged by the renderer; keep the loop alive.
		_ = scene.Renderer.Render(dt)

		window.SwapBuffers()
		glfw.PollEvents()

		if d := time.Since(frameStart); d > slowFrame {
			slog.Warn("slow frame", "duration", d, "top", profiling.TopN(5))
		}
		im.PostUpdate()
		limiter.Wait()
	}
	return nil
}

const orbitSpeed = 1.5 // radians per second while an orbit key is held

// handleInput applies this frame's viewer commands and returns the new
// pause state.
func handleInput(im *input.Manager, window *glfw.Window, scene *Scene, autoOrbit float32, dt float64, paused bool) bool {
	if im.JustPressed(input.ActionQuit) {
		window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionToggleLightSpace) {
		slog.Info("light space", "space", config.ToggleLightSpace())
	}
	if im.JustPressed(input.ActionToggleCamera) {
		enabled := !config.GetCameraEnabled()
		config.SetCameraEnabled(enabled)
		slog.Info("camera", "enabled", enabled)
	}
	if im.JustPressed(input.ActionPause) {
		paused = !paused
	}

	yaw := autoOrbit
	if paused {
		yaw = 0
	}
	if im.IsActive(input.ActionOrbitLeft) {
		yaw -= orbitSpeed
	}
	if im.IsActive(input.ActionOrbitRight) {
		yaw += orbitSpeed
	}
	scene.Camera.Orbit(yaw * float32(dt))
	return paused
}
