package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a viewer command, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionToggleLightSpace
	ActionToggleCamera
	ActionOrbitLeft
	ActionOrbitRight
	ActionPause
	ActionCount // Sentinel value for array sizing
)

// Manager maps physical keys to actions and tracks press edges per frame
type Manager struct {
	mu sync.RWMutex

	// One key can map to multiple actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
}

// NewManager creates a Manager with the default viewer bindings
func NewManager() *Manager {
	im := &Manager{keyToActions: make(map[glfw.Key][]Action)}

	im.BindKey(glfw.KeyEscape, ActionQuit)
	im.BindKey(glfw.KeyL, ActionToggleLightSpace)
	im.BindKey(glfw.KeyC, ActionToggleCamera)
	im.BindKey(glfw.KeyLeft, ActionOrbitLeft)
	im.BindKey(glfw.KeyA, ActionOrbitLeft)
	im.BindKey(glfw.KeyRight, ActionOrbitRight)
	im.BindKey(glfw.KeyD, ActionOrbitRight)
	im.BindKey(glfw.KeySpace, ActionPause)

	return im
}

// BindKey binds a physical key to an action
func (im *Manager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *Manager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// SetKeyCallback routes the window's key events to the manager
func (im *Manager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// PostUpdate must be called at the end of each frame to reset edge flags
func (im *Manager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
	}
}

// IsActive returns true while the action's key is held down
func (im *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}
