// Package config manages user-level settings stored at ~/.initium/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the package registry URL and the preferences backend.
package config
