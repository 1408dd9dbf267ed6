// Package schema validates JSON documents against the schemas embedded in
// the binary: the saved project configuration and generated assembly
// definition files.
package schema
