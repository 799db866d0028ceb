// Package resource reads and writes harness assets: raw files, base64-encoded resources and decoded textures.
package resource

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/Carmen-Shannon/loki-go/common"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmptyResource is returned when a resource has no bytes to decode.
var ErrEmptyResource = errors.New("empty resource")

// ReadFile reads the whole file at path.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - []byte: the file contents
//   - error: an error if the file could not be read
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, creating or truncating the file.
//
// Parameters:
//   - path: the destination file
//   - data: the bytes to write
//
// Returns:
//   - error: an error if the file could not be written
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write resource %s: %w", path, err)
	}
	return nil
}

// EncodeBase64 encodes data with the standard, padded base64 alphabet.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes standard, padded base64.
//
// Parameters:
//   - encoded: the base64 text
//
// Returns:
//   - []byte: the decoded bytes
//   - error: an error if the input is not valid base64
func DecodeBase64(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 resource: %w", err)
	}
	return data, nil
}

// EncodeImageResource reads a file and returns it base64-encoded, ready to be embedded as text.
//
// Parameters:
//   - path: the image file
//
// Returns:
//   - string: the base64 encoding of the file
//   - error: an error if the file could not be read
func EncodeImageResource(path string) (string, error) {
	data, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	return EncodeBase64(data), nil
}

// DecodeTexture decodes an encoded image (PNG, JPEG, GIF, BMP or WebP) into RGBA8 pixels.
//
// Parameters:
//   - data: the encoded image bytes
//
// Returns:
//   - common.TextureStagingData: row-major RGBA pixels with their dimensions
//   - error: an error if the format is unknown or the data is corrupt
func DecodeTexture(data []byte) (common.TextureStagingData, error) {
	if len(data) == 0 {
		return common.TextureStagingData{}, ErrEmptyResource
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	tex := common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
	if !tex.Valid() {
		return common.TextureStagingData{}, fmt.Errorf("decoded %s image has no pixels", format)
	}
	return tex, nil
}

// LoadTexture reads and decodes the image at path.
//
// Parameters:
//   - path: the image file
//
// Returns:
//   - common.TextureStagingData: the decoded pixels
//   - error: an error if the file could not be read or decoded
func LoadTexture(path string) (common.TextureStagingData, error) {
	data, err := ReadFile(path)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	tex, err := DecodeTexture(data)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to load texture %s: %w", path, err)
	}
	return tex, nil
}
