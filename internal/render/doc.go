// Package render turns review feedback Markdown into typed display blocks.
//
// Only a fixed subset of Markdown is recognised: "## " headings, "* " and "- "
// list items, triple-backtick code fences, and plain paragraphs. Everything
// else, including inline emphasis and links, is kept as literal text.
//
// [Render] is a single left-to-right scan over the input lines. The scan state
// (open list, open code fence) is an explicit value threaded through a step
// function, so the same input always produces the same blocks.
package render
