// Package cache stores review feedback so an identical request does not hit
// the provider twice.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, redacted
// code payload, and project context. The file store keeps one JSON file per
// entry with a creation timestamp and a TTL in seconds; expired entries are
// dropped on read. [Layered] puts a bounded in-memory LRU in front of the
// file store for the long-running server.
//
// The default cache directory is $XDG_CACHE_HOME/guardian (or the
// OS-appropriate equivalent). Payloads are hashed after secret redaction.
package cache
