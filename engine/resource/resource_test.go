package resource

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 0, A: 255})
		}
	}
	return img
}

func encode(t *testing.T, format string, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestBase64(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{in: "Man", out: "TWFu"},
		{in: "Ma", out: "TWE="},
		{in: "M", out: "TQ=="},
		{in: "", out: ""},
	}
	for _, tc := range testCases {
		if got := EncodeBase64([]byte(tc.in)); got != tc.out {
			t.Errorf("EncodeBase64(%q) = %q, want %q", tc.in, got, tc.out)
		}
		got, err := DecodeBase64(tc.out)
		if err != nil {
			t.Fatalf("DecodeBase64(%q): %v", tc.out, err)
		}
		if string(got) != tc.in {
			t.Errorf("DecodeBase64(%q) = %q, want %q", tc.out, got, tc.in)
		}
	}

	if _, err := DecodeBase64("not base64!"); err == nil {
		t.Error("expected an error for invalid input")
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	data := []byte{0, 1, 2, 250}

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("expected %v, got %v", data, got)
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestEncodeImageResource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	raw := encode(t, "png", testImage(2, 2))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	encoded, err := EncodeImageResource(path)
	if err != nil {
		t.Fatalf("EncodeImageResource: %v", err)
	}
	decoded, err := DecodeBase64(encoded)
	if err != nil || !bytes.Equal(decoded, raw) {
		t.Errorf("round trip through base64 changed the file (err %v)", err)
	}
}

func TestDecodeTextureFormats(t *testing.T) {
	img := testImage(4, 3)
	for _, format := range []string{"png", "jpeg", "gif", "bmp"} {
		t.Run(format, func(t *testing.T) {
			tex, err := DecodeTexture(encode(t, format, img))
			if err != nil {
				t.Fatalf("DecodeTexture: %v", err)
			}
			if tex.Width != 4 || tex.Height != 3 {
				t.Errorf("expected 4x3, got %dx%d", tex.Width, tex.Height)
			}
			if len(tex.Pixels) != 4*3*4 {
				t.Errorf("expected %d bytes, got %d", 4*3*4, len(tex.Pixels))
			}
			if tex.Pixels[3] != 255 {
				t.Errorf("expected opaque alpha, got %d", tex.Pixels[3])
			}
		})
	}
}

func TestDecodeTextureLossless(t *testing.T) {
	tex, err := DecodeTexture(encode(t, "png", testImage(4, 3)))
	if err != nil {
		t.Fatal(err)
	}
	// pixel (3, 2)
	off := (2*4 + 3) * 4
	if tex.Pixels[off] != 120 || tex.Pixels[off+1] != 80 {
		t.Errorf("unexpected pixel %v", tex.Pixels[off:off+4])
	}
}

func TestDecodeTextureErrors(t *testing.T) {
	if _, err := DecodeTexture(nil); !errors.Is(err, ErrEmptyResource) {
		t.Errorf("expected ErrEmptyResource, got %v", err)
	}
	if _, err := DecodeTexture([]byte("definitely not an image")); err == nil {
		t.Error("expected an error for unknown data")
	}
}
