package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h)); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(w, h), nil); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format string
		mime   string
	}{
		{"kit.png", pngBytes(t, 40, 30), "png", "image/png"},
		{"kit.PNG", pngBytes(t, 40, 30), "png", "image/png"},
		{"tray.jpg", jpegBytes(t, 40, 30), "jpeg", "image/jpeg"},
		{"tray.jpeg", jpegBytes(t, 40, 30), "jpeg", "image/jpeg"},
	}

	for _, tc := range tests {
		img, err := Parse(tc.name, tc.data, DefaultLimits())
		if err != nil {
			t.Errorf("Parse(%s) returned error: %v", tc.name, err)
			continue
		}
		if img.Format != tc.format || img.MIME != tc.mime {
			t.Errorf("Parse(%s) = %s/%s, want %s/%s", tc.name, img.Format, img.MIME, tc.format, tc.mime)
		}
		if img.Width != 40 || img.Height != 30 {
			t.Errorf("Parse(%s) dimensions = %dx%d, want 40x30", tc.name, img.Width, img.Height)
		}
	}
}

func TestParse_Rejected(t *testing.T) {
	data := pngBytes(t, 10, 10)

	tests := []struct {
		desc   string
		name   string
		data   []byte
		limits Limits
		target error
	}{
		{"empty", "a.png", nil, DefaultLimits(), ErrEmpty},
		{"wrong extension", "a.gif", data, DefaultLimits(), ErrUnsupportedType},
		{"text content", "a.png", []byte("definitely not an image"), DefaultLimits(), ErrUnsupportedType},
		{"too large", "a.png", data, Limits{MaxBytes: 10}, ErrTooLarge},
		{"too wide", "a.png", pngBytes(t, 50, 5), Limits{MaxDimension: 20}, ErrDimensions},
	}

	for _, tc := range tests {
		_, err := Parse(tc.name, tc.data, tc.limits)
		if err == nil {
			t.Errorf("%s: expected error", tc.desc)
			continue
		}
		var upErr *UploadParseError
		if !errors.As(err, &upErr) {
			t.Errorf("%s: error %T is not *UploadParseError", tc.desc, err)
			continue
		}
		if upErr.Name != tc.name {
			t.Errorf("%s: error name = %q, want %q", tc.desc, upErr.Name, tc.name)
		}
		if tc.target != nil && !errors.Is(err, tc.target) {
			t.Errorf("%s: error = %v, want %v", tc.desc, err, tc.target)
		}
	}
}

func TestParse_TruncatedPNG(t *testing.T) {
	data := pngBytes(t, 10, 10)[:20]
	_, err := Parse("broken.png", data, DefaultLimits())
	var upErr *UploadParseError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UploadParseError, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reaction.png")
	if err := os.WriteFile(path, pngBytes(t, 16, 8), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Open(path, DefaultLimits())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if img.Name != "reaction.png" {
		t.Errorf("Name = %q, want reaction.png", img.Name)
	}
	if _, err := img.Decode(); err != nil {
		t.Errorf("Decode failed: %v", err)
	}

	_, err = Open(filepath.Join(dir, "missing.png"), DefaultLimits())
	var upErr *UploadParseError
	if !errors.As(err, &upErr) {
		t.Errorf("Open(missing) error = %v, want *UploadParseError", err)
	}
}

func TestDescribe(t *testing.T) {
	img := &Image{Name: "kit.png", Format: "png", Width: 640, Height: 480, Data: make([]byte, 12000)}
	if got := img.Describe(); got != "kit.png (PNG, 640x480, 12 kB)" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestInspectMetadata_NoExif(t *testing.T) {
	if findings := InspectMetadata(pngBytes(t, 8, 8)); len(findings) != 0 {
		t.Errorf("expected no findings for plain PNG, got %v", findings)
	}
	if findings := InspectMetadata([]byte("garbage")); len(findings) != 0 {
		t.Errorf("expected no findings for garbage, got %v", findings)
	}
}

func TestHasLocation(t *testing.T) {
	if HasLocation(nil) {
		t.Error("HasLocation(nil) should be false")
	}
	if !HasLocation([]Finding{{Kind: FindingDevice}, {Kind: FindingGPS}}) {
		t.Error("HasLocation should detect GPS finding")
	}
}

func TestResize_KeepsAspect(t *testing.T) {
	out := Resize(testImage(600, 400), 300)
	if out.Bounds().Dx() != 300 || out.Bounds().Dy() != 200 {
		t.Errorf("Resize = %v, want 300x200", out.Bounds())
	}
}

func TestAnnotate(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	out, err := Annotate(src, "Correctly Placed")
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if out.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}

	white := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if out.RGBAAt(x, y) == (color.RGBA{255, 255, 255, 255}) {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("expected label pixels on the annotated image")
	}

	if _, err := Annotate(image.NewRGBA(image.Rect(0, 0, 0, 0)), "x"); err == nil {
		t.Error("Annotate on empty image should fail")
	}
}

func TestGrayscaleAndEncode(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	pix, w, h := Grayscale(src)
	if w != 4 || h != 2 || len(pix) != 8 {
		t.Fatalf("Grayscale = %d pixels %dx%d", len(pix), w, h)
	}
	for i, p := range pix {
		if p != 255 {
			t.Errorf("pixel %d = %d, want 255", i, p)
		}
	}

	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if _, err := Parse("out.png", data, DefaultLimits()); err != nil {
		t.Errorf("encoded PNG should parse: %v", err)
	}
}
