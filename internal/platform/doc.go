// Package platform provides the filesystem operations that behave
// differently across operating systems: permission changes, which are a
// no-op on Windows, and atomic file replacement.
package platform
