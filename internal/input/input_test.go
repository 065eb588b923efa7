package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestEdgeDetection(t *testing.T) {
	im := NewManager()

	im.HandleKeyEvent(glfw.KeyL, glfw.Press)
	if !im.JustPressed(ActionToggleLightSpace) || !im.IsActive(ActionToggleLightSpace) {
		t.Fatal("press not registered")
	}

	im.PostUpdate()
	if im.JustPressed(ActionToggleLightSpace) {
		t.Error("edge must last one frame")
	}

	// Key repeat keeps the action held without a new edge.
	im.HandleKeyEvent(glfw.KeyL, glfw.Repeat)
	if im.JustPressed(ActionToggleLightSpace) {
		t.Error("repeat must not produce an edge")
	}

	im.HandleKeyEvent(glfw.KeyL, glfw.Release)
	if im.IsActive(ActionToggleLightSpace) {
		t.Error("release not registered")
	}
}

func TestMultipleKeysPerAction(t *testing.T) {
	im := NewManager()
	im.HandleKeyEvent(glfw.KeyA, glfw.Press)
	if !im.IsActive(ActionOrbitLeft) {
		t.Error("A should orbit left")
	}
	im.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	im.HandleKeyEvent(glfw.KeyA, glfw.Release)
	if im.IsActive(ActionOrbitLeft) {
		t.Error("state follows the last event for the action")
	}
}

func TestUnbindKey(t *testing.T) {
	im := NewManager()
	im.UnbindKey(glfw.KeyEscape)
	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if im.IsActive(ActionQuit) {
		t.Error("unbound key still triggers its action")
	}
	im.BindKey(glfw.KeyQ, ActionQuit)
	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	if !im.JustPressed(ActionQuit) {
		t.Error("rebound key not registered")
	}
	im.BindKey(glfw.KeyZ, ActionCount)
	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
}
