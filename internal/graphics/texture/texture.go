package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"sync"

	"glmesh/internal/graphics/device"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// MaxEdge is the largest width or height uploaded to the device. Bigger
// images are scaled down keeping their aspect ratio.
const MaxEdge = 2048

// Texture is a 2D diffuse texture living on a device.
type Texture struct {
	ID     device.Texture
	Width  int
	Height int
}

// Decode reads an image and converts it to RGBA, downscaled to MaxEdge.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toRGBA(img, MaxEdge), nil
}

func toRGBA(img image.Image, maxEdge int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxEdge || h > maxEdge {
		if w >= h {
			h = max(1, h*maxEdge/w)
			w = maxEdge
		} else {
			w = max(1, w*maxEdge/h)
			h = maxEdge
		}
		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Upload creates a device texture from img.
func Upload(dev device.Device, img *image.RGBA) (*Texture, error) {
	id, err := dev.CreateTexture(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}
	return &Texture{ID: id, Width: img.Rect.Dx(), Height: img.Rect.Dy()}, nil
}

// Load decodes the image file at path and uploads it.
func Load(dev device.Device, path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	rgba, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Upload(dev, rgba)
}

// Cache loads each texture path once per device.
type Cache struct {
	dev      device.Device
	mu       sync.RWMutex
	textures map[string]*Texture
}

func NewCache(dev device.Device) *Cache {
	return &Cache{dev: dev, textures: make(map[string]*Texture)}
}

// Get returns the cached texture for path, loading it on first use.
func (c *Cache) Get(path string) (*Texture, error) {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}

	tex, err := Load(c.dev, path)
	if err != nil {
		return nil, err
	}
	c.textures[path] = tex
	slog.Debug("texture loaded", "path", path, "width", tex.Width, "height", tex.Height)
	return tex, nil
}

// Len is the number of cached textures.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Dispose deletes every cached texture from the device.
func (c *Cache) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, tex := range c.textures {
		if tex.ID != 0 {
			c.dev.DeleteTexture(tex.ID)
		}
		delete(c.textures, path)
	}
}
