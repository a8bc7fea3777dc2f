// Package config provides configuration structures and utilities for SafeLink.
// It defines the classification service settings, the storage backend of the
// blocked analysis slot, the warning server address and output preferences.
//
// Values are layered: NewConfig defaults, then the .safelink YAML file, then
// command line flags.
package config
