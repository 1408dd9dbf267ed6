package registry

import "context"

// Service is the package service the fetcher drives.
type Service interface {
	// Add installs a package by identifier without blocking the caller.
	Add(ctx context.Context, identifier string) *AddRequest
	// List reports the packages recorded in the project.
	List(ctx context.Context) *ListRequest
	// ImportArchive imports a package archive into the project.
	ImportArchive(path string, overwrite bool) error
}
