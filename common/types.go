// package common contains common types and helpers that are used throughout this harness. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Valid reports whether the pixel buffer holds exactly Width*Height RGBA texels.
//
// Returns:
//   - bool: true if the staging data can be uploaded
func (t TextureStagingData) Valid() bool {
	return t.Width > 0 && t.Height > 0 && len(t.Pixels) == int(t.Width)*int(t.Height)*4
}

// CheckerTexture builds a two-colour checkerboard used when no texture file is configured.
//
// Parameters:
//   - size: width and height in pixels
//   - cell: checker cell size in pixels
//   - a, b: RGBA colours of the two cell kinds
//
// Returns:
//   - TextureStagingData: the generated texture
func CheckerTexture(size, cell uint32, a, b [4]byte) TextureStagingData {
	cell = max(cell, 1)
	pixels := make([]byte, size*size*4)
	for y := range size {
		for x := range size {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			copy(pixels[(y*size+x)*4:], c[:])
		}
	}
	return TextureStagingData{Pixels: pixels, Width: size, Height: size}
}
