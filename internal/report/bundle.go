package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrsinham/quantitest/internal/media"
	"golang.org/x/sync/errgroup"
)

// Bundle file names written next to the results document.
const (
	SummaryFilename = "summary.md"
	CaptureFilename = "reaction.dcm"
)

// Bundle is the full set of artifacts for one session.
type Bundle struct {
	Sink     Sink
	Summary  Summary
	Reaction *media.Image // optional
}

// Write stores every artifact under dir concurrently and returns the paths
// written. The first failure cancels the remaining writers.
func (b Bundle) Write(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := []string{
		filepath.Join(dir, ResultsFilename),
		filepath.Join(dir, SummaryFilename),
	}
	if b.Reaction != nil {
		paths = append(paths, filepath.Join(dir, CaptureFilename))
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		doc, err := b.Sink.ExportReport()
		if err != nil {
			return err
		}
		return writeFile(ctx, paths[0], doc.Data)
	})

	g.Go(func() error {
		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, b.Summary); err != nil {
			return fmt.Errorf("rendering summary: %w", err)
		}
		return writeFile(ctx, paths[1], buf.Bytes())
	})

	if b.Reaction != nil {
		g.Go(func() error {
			var buf bytes.Buffer
			err := WriteCapture(&buf, Capture{
				SessionID: b.Summary.SessionID,
				Label:     "Reaction",
				Taken:     b.Summary.GeneratedAt,
			}, b.Reaction)
			if err != nil {
				return err
			}
			return writeFile(ctx, paths[2], buf.Bytes())
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
