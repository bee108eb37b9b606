package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/dshills/guardian/internal/review"
)

// Writer writes a result in a specific format.
type Writer interface {
	Write(w io.Writer, result *review.Result) error
}

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "markdown", "html"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{Color: !color.NoColor}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteResult writes the result to outPath, or to stdout when outPath is empty.
func WriteResult(result *review.Result, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	if tw, ok := writer.(*TextWriter); ok && outPath != "" {
		tw.Color = false
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, result)
}
