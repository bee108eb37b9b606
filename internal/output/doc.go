// Package output formats review results for display or machine consumption.
//
// Four formats are supported:
//   - text     human-readable terminal output, coloured when stdout is a TTY (default)
//   - json     the full result, including rendered blocks
//   - markdown the raw feedback under a short metadata header
//   - html     a standalone page built from the rendered blocks
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*review.Result]. [WriteResult]
// handles destination selection.
package output
