package analysis

import (
	"context"
	"fmt"

	"github.com/mrsinham/quantitest/internal/media"
)

// ReactionLabel is stamped on the generated output picture.
const ReactionLabel = "ANALYZED: erythema >5mm / wheal >2mm"

// Rendering is the input/output picture pair shown after a reaction photo is
// analysed.
type Rendering struct {
	Input  *media.Image
	Output []byte // PNG
	Width  int
	Height int
}

// ReactionImager produces the annotated output picture for a reaction photo.
type ReactionImager struct {
	// Width is the display width both pictures are scaled to. Zero keeps the
	// original size.
	Width int
}

// Render decodes the photo, scales it and stamps the analysis label.
func (r ReactionImager) Render(ctx context.Context, img *media.Image) (*Rendering, error) {
	if img == nil {
		return nil, fmt.Errorf("no reaction photo")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decoded, err := img.Decode()
	if err != nil {
		return nil, err
	}

	scaled := media.Resize(decoded, r.Width)
	annotated, err := media.Annotate(scaled, ReactionLabel)
	if err != nil {
		return nil, fmt.Errorf("annotating %s: %w", img.Name, err)
	}

	out, err := media.EncodePNG(annotated)
	if err != nil {
		return nil, err
	}

	b := annotated.Bounds()
	return &Rendering{Input: img, Output: out, Width: b.Dx(), Height: b.Dy()}, nil
}

// SurfaceResult turns the operator's skin assessment into an analysis result.
func SurfaceResult(suitable bool) Result {
	if suitable {
		return Result{Status: StatusSuitable, Suggestion: "Proceed with sterilising the test area."}
	}
	return Result{Status: StatusUnsuitable, Suggestion: "Choose the volar forearm or back, away from hair and uneven skin."}
}
