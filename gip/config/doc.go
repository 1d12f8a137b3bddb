// Package config loads the site INI configuration from an ordered list of
// files and exposes it through accessors that default instead of failing.
// Grid site configs are sprawling and frequently incomplete; every consumer
// therefore states its own fallback value at the call site.
package config
