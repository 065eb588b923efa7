package renderer

import (
	"errors"
	"testing"

	"glmesh/internal/graphics/camera"
	"glmesh/internal/graphics/device/devicetest"
	"glmesh/internal/graphics/light"
)

type stubRenderable struct {
	name     string
	initErr  error
	drawErr  error
	log      *[]string
	last     RenderContext
	viewport [2]int
}

func (s *stubRenderable) Init() error {
	*s.log = append(*s.log, "init "+s.name)
	return s.initErr
}

func (s *stubRenderable) Render(ctx RenderContext) error {
	*s.log = append(*s.log, "render "+s.name)
	s.last = ctx
	return s.drawErr
}

func (s *stubRenderable) Dispose() {
	*s.log = append(*s.log, "dispose "+s.name)
}

func (s *stubRenderable) SetViewport(width, height int) {
	s.viewport = [2]int{width, height}
}

func TestRenderIsolatesFailures(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	a := &stubRenderable{name: "a", drawErr: boom, log: &log}
	b := &stubRenderable{name: "b", log: &log}

	dev := devicetest.New()
	r, err := NewRenderer(dev, camera.NewCamera(800, 600), a, b)
	if err != nil {
		t.Fatal(err)
	}
	r.SetLights(light.Default())

	err = r.Render(0.016)
	if !errors.Is(err, boom) {
		t.Fatalf("Render = %v, want boom", err)
	}
	if log[len(log)-1] != "render b" {
		t.Errorf("second renderable skipped: %v", log)
	}
	if dev.Count("Clear") != 1 {
		t.Error("frame not cleared")
	}
	if len(b.last.Lights) != 1 || b.last.Camera == nil || b.last.Device != dev {
		t.Errorf("context = %+v", b.last)
	}
	if b.last.View != r.Camera().ViewMatrix() {
		t.Error("view matrix not taken from the camera")
	}
}

func TestInitFailureDisposesEarlierRenderables(t *testing.T) {
	var log []string
	a := &stubRenderable{name: "a", log: &log}
	b := &stubRenderable{name: "b", initErr: errors.New("no"), log: &log}
	c := &stubRenderable{name: "c", log: &log}

	if _, err := NewRenderer(devicetest.New(), nil, a, b, c); err == nil {
		t.Fatal("expected init error")
	}
	want := []string{"init a", "init b", "dispose a"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestDisposeReverseOrder(t *testing.T) {
	var log []string
	a := &stubRenderable{name: "a", log: &log}
	b := &stubRenderable{name: "b", log: &log}
	r, err := NewRenderer(devicetest.New(), nil, a, b)
	if err != nil {
		t.Fatal(err)
	}
	log = log[:0]
	r.Dispose()
	if len(log) != 2 || log[0] != "dispose b" || log[1] != "dispose a" {
		t.Errorf("log = %v", log)
	}
}

func TestUpdateViewport(t *testing.T) {
	var log []string
	a := &stubRenderable{name: "a", log: &log}
	dev := devicetest.New()
	cam := camera.NewCamera(100, 100)
	r, _ := NewRenderer(dev, cam, a)
	r.UpdateViewport(200, 100)
	if cam.AspectRatio != 2 {
		t.Errorf("aspect = %v", cam.AspectRatio)
	}
	if a.viewport != [2]int{200, 100} {
		t.Errorf("renderable viewport = %v", a.viewport)
	}
	if dev.Count("Viewport") != 1 {
		t.Error("device viewport not set")
	}
}

func TestRenderWithoutCamera(t *testing.T) {
	var log []string
	a := &stubRenderable{name: "a", log: &log}
	r, _ := NewRenderer(devicetest.New(), nil, a)
	if err := r.Render(0); err != nil {
		t.Fatal(err)
	}
	if a.last.Camera != nil {
		t.Error("expected no camera in context")
	}
}
