// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// MaxTextureSize is the largest texture edge. Larger images are downscaled.
const MaxTextureSize = 4096

// Texture binds a sampled RGBA texture to a pixel-stage slot.
type Texture struct {
	path     string
	slot     uint32
	hasAlpha bool
	texture  gfx.Texture
}

// TextureID returns the codex identity of a texture file bound to slot.
func TextureID(path string, slot uint32) string {
	return cache.Key("texture", path, slot)
}

// ResolveTexture returns the shared texture for the image file at path.
// PNG, JPEG, BMP, TIFF and WebP files are supported.
func ResolveTexture(c *cache.Codex, dev gfx.Device, path string, slot uint32) (*Texture, error) {
	return cache.Resolve(c, TextureID(path, slot), func() (*Texture, error) {
		img, err := loadImage(path)
		if err != nil {
			return nil, err
		}
		return NewTextureFromImage(dev, path, img, slot)
	})
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bind: open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("bind: decode texture %q: %w", path, err)
	}
	return img, nil
}

// NewTextureFromImage uploads img as an unshared texture. name is used for
// the identity and debug label.
func NewTextureFromImage(dev gfx.Device, name string, img image.Image, slot uint32) (*Texture, error) {
	if err := checkDevice(dev); err != nil {
		return nil, err
	}
	rgba := toRGBA(img)
	b := rgba.Bounds()
	t, err := dev.CreateTexture(&gfx.TextureDescriptor{
		Label:  TextureID(name, slot),
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Format: gputypes.TextureFormatRGBA8Unorm,
		Pixels: rgba.Pix,
	})
	if err != nil {
		return nil, fmt.Errorf("bind: create texture %q: %w", name, err)
	}
	return &Texture{
		path:     name,
		slot:     slot,
		hasAlpha: !rgba.Opaque(),
		texture:  t,
	}, nil
}

// toRGBA converts img to tightly packed RGBA with its origin at zero,
// downscaling images whose longest edge exceeds MaxTextureSize.
func toRGBA(img image.Image) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if w > MaxTextureSize || h > MaxTextureSize {
		if w >= h {
			h = h * MaxTextureSize / w
			w = MaxTextureSize
		} else {
			w = w * MaxTextureSize / h
			h = MaxTextureSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && src.Min == (image.Point{}) && rgba.Stride == 4*w {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

// Bind implements Bindable.
func (t *Texture) Bind(ctx gfx.Context) error {
	ctx.SetTexture(t.slot, t.texture)
	return nil
}

// ID implements Bindable.
func (t *Texture) ID() string { return TextureID(t.path, t.slot) }

// HasAlpha reports whether any pixel is not fully opaque.
func (t *Texture) HasAlpha() bool { return t.hasAlpha }

// Slot returns the binding slot.
func (t *Texture) Slot() uint32 { return t.slot }

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height uint32) {
	return t.texture.Width(), t.texture.Height()
}

// Destroy releases the device texture.
func (t *Texture) Destroy() { t.texture.Destroy() }
