// Package imaging adapts an on-disk image to the mesh.InclusionFunc
// mask the initializer expects (spec §1 "out of scope (external
// collaborators)", §4.3 Image mask). Nothing under mesh, relax, heater
// or sim imports this package; it is a pluggable front end, the way
// the teacher keeps its own format decoders (inp) out of fem's core
// solve loop.
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/dantrag/pyspringsim/mesh"
)

// MaskFromFile decodes the image at path, scales it by factor, converts
// it to single-channel luminance (mirroring initialize_from_image's
// image.convert("L")) and returns a mesh.InclusionFunc reading it by
// nearest pixel, along with the mask's resulting width and height.
//
// Luminance is inverted globally if the top-left pixel is non-zero,
// matching the source's "light background, dark shape" convention.
func MaskFromFile(path string, scale float64) (mask mesh.InclusionFunc, width, height float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("imaging: open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("imaging: decode %s: %w", path, err)
	}

	bounds := src.Bounds()
	dstW := int(float64(bounds.Dx()) * scale)
	dstH := int(float64(bounds.Dy()) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	scaled := image.NewGray(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)

	invert := scaled.GrayAt(0, 0).Y != 0

	lookup := func(x, y float64) bool {
		px, py := int(x), int(y)
		if px < 0 || py < 0 || px >= dstW || py >= dstH {
			return false
		}
		v := scaled.GrayAt(px, py).Y != 0
		if invert {
			return !v
		}
		return v
	}

	return lookup, float64(dstW), float64(dstH), nil
}
