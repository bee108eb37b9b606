package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/guardian/internal/intake"
)

// FromPaste wraps pasted code as a single main.js unit.
func FromPaste(code, projectContext string) (Request, error) {
	if strings.TrimSpace(code) == "" {
		return Request{}, ErrEmptyPaste
	}
	return Request{
		Mode:    ModePaste,
		Code:    intake.Snippet(code),
		Context: projectContext,
		Files:   []string{intake.SnippetName},
	}, nil
}

// FromFiles bundles the accepted files of a batch. A batch over the limit
// yields intake.ErrTooManyFiles; an empty one yields ErrNoFiles.
func FromFiles(ctx context.Context, batch intake.Batch, projectContext string, opts intake.BundleOptions) (Request, error) {
	if err := batch.Err(); err != nil {
		return Request{}, err
	}
	if len(batch.Accepted) == 0 {
		return Request{}, ErrNoFiles
	}
	code, err := intake.Bundle(ctx, batch.Accepted, opts)
	if err != nil {
		return Request{}, fmt.Errorf("reading files: %w", err)
	}
	return Request{
		Mode:    ModeUpload,
		Code:    code,
		Context: projectContext,
		Files:   batch.Paths(),
	}, nil
}
