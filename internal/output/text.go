package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/guardian/internal/render"
	"github.com/dshills/guardian/internal/review"
)

// TextWriter outputs the rendered blocks for a terminal.
type TextWriter struct {
	Color bool
}

func (t *TextWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}
	heading := t.style(color.FgCyan, color.Bold)
	code := t.style(color.FgGreen)
	faint := t.style(color.Faint)

	ew.printf("Code Guardian Review — %s\n", modeLabel(result.Mode))
	ew.printf("Provider: %s (%s)\n", result.Provider, result.Model)
	if len(result.Files) > 0 {
		ew.printf("Files: %d\n", len(result.Files))
	}
	ew.println(strings.Repeat("─", 60))

	if len(result.Blocks) == 0 {
		ew.println("\nThe reviewer returned no feedback.")
	}

	for _, b := range result.Blocks {
		switch b := b.(type) {
		case render.Heading:
			ew.printf("\n%s\n", heading.Sprint(b.Text))
		case render.Paragraph:
			for _, line := range wrapText(b.Text, 76) {
				ew.printf("%s\n", line)
			}
		case render.List:
			for _, item := range b.Items {
				lines := wrapText(item, 72)
				ew.printf("  • %s\n", lines[0])
				for _, l := range lines[1:] {
					ew.printf("    %s\n", l)
				}
			}
		case render.Code:
			ew.println("")
			for _, line := range strings.Split(b.Content, "\n") {
				ew.printf("    %s\n", code.Sprint(line))
			}
			ew.println("")
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.println(faint.Sprint(footer(result)))
	return ew.err
}

func (t *TextWriter) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func modeLabel(m review.Mode) string {
	switch m {
	case review.ModePaste:
		return "pasted code"
	case review.ModeUpload:
		return "project upload"
	default:
		return "review"
	}
}

func footer(r *review.Result) string {
	s := fmt.Sprintf("Completed in %dms (LLM: %dms)", r.Timing.TotalMs, r.Timing.LLMMs)
	if r.TokensUsed > 0 {
		s += fmt.Sprintf(" · %d tokens", r.TokensUsed)
	}
	if r.Cached {
		s += " · cached"
	}
	return s
}

// wrapText wraps at word boundaries. Leading indentation is not preserved.
func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
