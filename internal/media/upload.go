// Package media validates and transforms operator-supplied photos: kit
// contents, labelled trays and skin reactions.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// Limits bounds what an upload may contain.
type Limits struct {
	MaxBytes     int64
	MaxDimension int
}

// DefaultLimits allows photos up to 10 MiB and 8000 pixels on a side.
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:     10 << 20,
		MaxDimension: 8000,
	}
}

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

var allowedMIME = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
}

// Image is a validated upload: the raw bytes plus what was learned while
// checking them.
type Image struct {
	Name   string
	MIME   string
	Format string
	Width  int
	Height int
	Data   []byte
}

// Open reads and validates an image file from disk.
func Open(path string, limits Limits) (*Image, error) {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, &UploadParseError{Name: name, Reason: "cannot read file", Err: err}
	}
	if limits.MaxBytes > 0 && info.Size() > limits.MaxBytes {
		return nil, &UploadParseError{
			Name:   name,
			Reason: fmt.Sprintf("%s exceeds %s", humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(limits.MaxBytes))),
			Err:    ErrTooLarge,
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UploadParseError{Name: name, Reason: "cannot read file", Err: err}
	}
	return Parse(name, data, limits)
}

// Parse validates uploaded bytes. The name's extension, the sniffed content
// type and the decoded header must all agree on PNG or JPEG.
func Parse(name string, data []byte, limits Limits) (*Image, error) {
	if len(data) == 0 {
		return nil, &UploadParseError{Name: name, Err: ErrEmpty}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return nil, &UploadParseError{Name: name, Reason: fmt.Sprintf("extension %q (accepted: png, jpg, jpeg)", ext), Err: ErrUnsupportedType}
	}

	if limits.MaxBytes > 0 && int64(len(data)) > limits.MaxBytes {
		return nil, &UploadParseError{
			Name:   name,
			Reason: fmt.Sprintf("%s exceeds %s", humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(limits.MaxBytes))),
			Err:    ErrTooLarge,
		}
	}

	mime := http.DetectContentType(data)
	format, ok := allowedMIME[mime]
	if !ok {
		return nil, &UploadParseError{Name: name, Reason: fmt.Sprintf("content type %s", mime), Err: ErrUnsupportedType}
	}

	cfg, decoded, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &UploadParseError{Name: name, Reason: "malformed image", Err: err}
	}
	if decoded != format {
		return nil, &UploadParseError{Name: name, Reason: fmt.Sprintf("content is %s but header decodes as %s", format, decoded), Err: ErrUnsupportedType}
	}
	if limits.MaxDimension > 0 && (cfg.Width > limits.MaxDimension || cfg.Height > limits.MaxDimension) {
		return nil, &UploadParseError{
			Name:   name,
			Reason: fmt.Sprintf("%dx%d exceeds %dx%d", cfg.Width, cfg.Height, limits.MaxDimension, limits.MaxDimension),
			Err:    ErrDimensions,
		}
	}

	return &Image{
		Name:   name,
		MIME:   mime,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Data:   data,
	}, nil
}

// Decode returns the decoded pixels.
func (img *Image) Decode() (image.Image, error) {
	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", img.Name, err)
	}
	return decoded, nil
}

// Describe returns a short human-readable summary, e.g. "kit.png (PNG, 640x480, 12 kB)".
func (img *Image) Describe() string {
	return fmt.Sprintf("%s (%s, %dx%d, %s)",
		img.Name, strings.ToUpper(img.Format), img.Width, img.Height, humanize.Bytes(uint64(len(img.Data))))
}
