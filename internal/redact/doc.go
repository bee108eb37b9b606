// Package redact strips secrets from source files before they are bundled
// into a review request.
//
// Detection uses named regex rules covering common secret shapes: API keys,
// JWTs, private keys, AWS credentials, bearer tokens, and provider-specific
// tokens (Anthropic, OpenAI, Gemini, GitHub, Slack). [Scan] reports what
// would be removed without changing anything, which backs the dry-run view.
//
// Files whose paths match a configured glob are replaced wholesale with a
// placeholder rather than being scanned.
package redact
