// Package review turns collected source code into Markdown feedback from an
// LLM provider.
//
// A [Request] is built either from pasted code ([FromPaste]), which is wrapped
// as a single main.js unit, or from an intake batch ([FromFiles]), whose files
// are concatenated with START/END OF FILE delimiters. [Engine.Review] redacts
// secrets, consults the response cache, calls the provider with the Code
// Guardian system prompt, and parses the reply into display blocks.
//
// Provider failures come back as a single wrapped error whose message is safe
// to show to the user; input problems are reported as [*InputError].
package review
