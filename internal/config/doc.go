// Package config loads and merges guardian configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (GUARDIAN_PROVIDER, GUARDIAN_MODEL, GUARDIAN_ADDR, etc.)
//  3. Config file ($XDG_CONFIG_HOME/guardian/config.json)
//  4. Built-in defaults
//
// Provider API keys are never stored in the config file; they are read from the
// environment, optionally populated from a .env file by [LoadDotEnv].
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file, and
// [SetField] to update a single key.
package config
