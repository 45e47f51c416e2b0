// Package config loads permauth configuration from the config file and
// environment variables, tracking the source of each attribute.
package config
