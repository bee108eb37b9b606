package intake

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/guardian/internal/redact"
	"golang.org/x/sync/errgroup"
)

// SnippetName is the file name pasted code is reviewed under.
const SnippetName = "main.js"

// BundleOptions controls how accepted files are read and joined.
type BundleOptions struct {
	// Concurrency bounds the number of files read at once. Zero means 8.
	Concurrency int
	// RedactSecrets scrubs secrets from each file and blanks files whose
	// path matches RedactPaths.
	RedactSecrets bool
	RedactPaths   []string
}

// FormatUnit wraps one file's text in the START/END OF FILE delimiters. The
// delimiter strings are not escaped inside text.
func FormatUnit(path, text string) string {
	return fmt.Sprintf("--- START OF FILE %s ---\n%s\n--- END OF FILE %s ---\n", path, text, path)
}

// Snippet wraps pasted code as a single unit named [SnippetName].
func Snippet(code string) string {
	return strings.TrimSuffix(FormatUnit(SnippetName, code), "\n")
}

// Bundle reads files concurrently and joins their units with a blank line
// between them. Output order matches input order. The first read error aborts
// the bundle.
func Bundle(ctx context.Context, files []Candidate, opts BundleOptions) (string, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = 8
	}

	units := make([]string, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, f := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			text, err := readCandidate(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f.Path, err)
			}
			if opts.RedactSecrets {
				text = redact.Content(text, f.Path, opts.RedactPaths)
			}
			units[i] = FormatUnit(f.Path, text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(units, "\n"), nil
}

func readCandidate(c Candidate) (string, error) {
	if c.Open == nil {
		return "", fmt.Errorf("no content reader")
	}
	rc, err := c.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
