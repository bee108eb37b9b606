// Guardian is a friendly AI code reviewer for pasted code and project folders.
//
// It sends source code with optional project context to an LLM provider and
// renders the returned Markdown review as headings, paragraphs, lists and code
// blocks, either in the terminal or in a small browser UI.
//
// Usage:
//
//	guardian review snippet < main.js          # review code from stdin
//	guardian review dir ./my-app               # review a project folder
//	guardian review dir ./my-app --dry-run     # list what would be sent
//	guardian serve --addr :8080                # browser UI and JSON API
//	guardian models doctor                     # check provider credentials
package main
