// Package config loads and validates application configuration from
// defaults, an optional config file and MOODLOG_-prefixed environment
// variables, in increasing order of precedence.
package config
