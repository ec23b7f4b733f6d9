// Package texture loads and caches device-resident diffuse textures: plain,
// tightly-packed 8-bit RGB buffers with no alpha, matching the storage
// format §3 requires for texture sampling.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Image is a device-resident texture: Width×Height texels, each 3 bytes
// (R,G,B) packed with no padding, Pix[(x+y*Width)*3:...+3].
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Load reads an image file in any registered format (PNG, JPEG, TGA, BMP,
// TIFF) and converts it to a packed RGB Image, dropping any alpha channel —
// generalized from the teacher's OZJ/OZT-specific header-stripping loader
// (internal/texture/loader.go) into a plain image.Decode call, since device
// textures here carry no container-specific envelope to strip.
func Load(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	return Decode(raw, path)
}

// Decode converts raw image bytes (any registered format) into a packed
// RGB Image. name is used only for error messages.
func Decode(raw []byte, name string) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}
	return toImage(src), nil
}

func toImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*3)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			i += 3
		}
	}
	return &Image{Width: w, Height: h, Pix: pix}
}
