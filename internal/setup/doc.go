// Package setup defines the project setup configuration: the toggleable
// entries (folders, registry packages, package files), the aggregate Config
// with its defaults, and the JSON interchange format used by every
// persistence channel.
package setup
