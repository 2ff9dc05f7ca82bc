package media

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates the upload contained no bytes.
	ErrEmpty = errors.New("empty file")
	// ErrUnsupportedType indicates the upload is not a PNG or JPEG image.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTooLarge indicates the upload exceeds the configured byte limit.
	ErrTooLarge = errors.New("file too large")
	// ErrDimensions indicates the image is larger than the configured pixel limit.
	ErrDimensions = errors.New("image dimensions exceed limit")
)

// UploadParseError reports an upload that was rejected. It is shown inline on
// the step that requested the upload.
type UploadParseError struct {
	Name   string
	Reason string
	Err    error
}

func (e *UploadParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("upload %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("upload %q: %s: %v", e.Name, e.Reason, e.Err)
}

func (e *UploadParseError) Unwrap() error {
	return e.Err
}
