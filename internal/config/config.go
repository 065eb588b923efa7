package config

import (
	"fmt"
	"strings"
	"sync"
)

// Light space names accepted by SetLightSpace.
const (
	LightSpaceLocal = "local"
	LightSpaceView  = "view"
)

// RenderSettings holds render configuration
type RenderSettings struct {
	mu            sync.RWMutex
	lightSpace    string
	fpsLimit      int // 0 means unlimited
	cameraEnabled bool
}

var globalRenderSettings = &RenderSettings{
	lightSpace:    LightSpaceLocal,
	fpsLimit:      60,
	cameraEnabled: true,
}

// GetLightSpace returns the space new light uniforms are computed in
func GetLightSpace() string {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.lightSpace
}

// SetLightSpace sets the light space, "local" or "view"
func SetLightSpace(space string) error {
	space = strings.ToLower(space)
	if space != LightSpaceLocal && space != LightSpaceView {
		return fmt.Errorf("unknown light space %q", space)
	}
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.lightSpace = space
	return nil
}

// ToggleLightSpace switches between local and view space and returns the
// new value
func ToggleLightSpace() string {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if globalRenderSettings.lightSpace == LightSpaceLocal {
		globalRenderSettings.lightSpace = LightSpaceView
	} else {
		globalRenderSettings.lightSpace = LightSpaceLocal
	}
	return globalRenderSettings.lightSpace
}

// GetFPSLimit returns the frame rate cap, 0 when unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(fps int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if fps < 0 {
		fps = 0
	}
	if fps > 0 && fps < 10 {
		fps = 10
	}
	if fps > 500 {
		fps = 500
	}

	globalRenderSettings.fpsLimit = fps
}

// GetCameraEnabled reports whether scenes are drawn through the camera
func GetCameraEnabled() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.cameraEnabled
}

// SetCameraEnabled switches camera transforms on or off
func SetCameraEnabled(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.cameraEnabled = enabled
}
