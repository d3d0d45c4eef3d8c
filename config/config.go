// Package config supplies configuration values to the pubsub client and its
// transport from the process environment, optionally seeded from env files.
package config

// Config reads configuration values by key.
type Config interface {
	Get(string) string
	GetOrDefault(string, string) string
}
