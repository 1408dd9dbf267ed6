package registry

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/initium-labs/initium/internal/logging"
	"github.com/initium-labs/initium/internal/setup"
)

// Fetcher brings a configuration's dependencies into the project.
type Fetcher struct {
	Service  Service
	Logger   *logging.Logger
	Interval time.Duration
}

// Report summarizes a fetch.
type Report struct {
	Added    []PackageInfo
	Imported []string
	Pending  []string // identifiers still in progress when the wait ended
	Errors   []error
}

func (r *Report) merge(other *Report) {
	r.Added = append(r.Added, other.Added...)
	r.Imported = append(r.Imported, other.Imported...)
	r.Pending = append(r.Pending, other.Pending...)
	r.Errors = append(r.Errors, other.Errors...)
}

func (f *Fetcher) logger() *logging.Logger {
	if f.Logger == nil {
		return logging.Discard()
	}
	return f.Logger
}

// FetchDependencies adds the included registry packages, then imports the
// included package files.
func (f *Fetcher) FetchDependencies(ctx context.Context, cfg *setup.Config) (*Report, error) {
	report, err := f.FetchRegistryPackages(ctx, cfg.Packages)
	report.merge(f.FetchPackageFiles(cfg.PackageFiles))
	return report, err
}

// FetchRegistryPackages issues an add for every included package without
// waiting between them, then polls until each has completed. A ctx that
// ends first stops the wait only; the adds keep running.
func (f *Fetcher) FetchRegistryPackages(ctx context.Context, packages *setup.EntrySet) (*Report, error) {
	log := f.logger()
	report := &Report{}
	tracker := NewTracker(f.Interval)

	type issued struct {
		id  string
		req *AddRequest
	}
	var all []issued

	// Adds outlive the wait: an ended ctx must not abort a download.
	addCtx := context.WithoutCancel(ctx)
	for _, e := range packages.Included() {
		req := f.Service.Add(addCtx, e.Name)
		all = append(all, issued{id: e.Name, req: req})

		id := e.Name
		tracker.Track(req, func() {
			switch status := req.Status(); {
			case status == Success:
				info := req.Result()
				report.Added = append(report.Added, info)
				log.Info("Package %s added successfully.", info.Name)
			case IsFailure(status):
				failure := req.Failure()
				if failure == nil {
					failure = &ServiceError{Message: "unknown error"}
				}
				report.Errors = append(report.Errors, &PackageServiceError{
					Identifier: id,
					Code:       failure.Code,
					Message:    failure.Message,
				})
				log.Error("Failed to add package: %s", failure.Message)
			}
		})
	}

	err := tracker.Wait(ctx)
	if err != nil {
		for _, is := range all {
			if !is.req.IsCompleted() {
				report.Pending = append(report.Pending, is.id)
			}
		}
	}
	return report, err
}

// FetchPackageFiles imports every included package file. Missing files are
// reported and skipped.
func (f *Fetcher) FetchPackageFiles(files *setup.EntrySet) *Report {
	log := f.logger()
	report := &Report{}

	for _, e := range files.Included() {
		path := e.Name
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			nf := &PackageFileNotFoundError{Path: path}
			report.Errors = append(report.Errors, nf)
			log.Error("Package file not found: %s", path)
			continue
		}

		if err := f.Service.ImportArchive(path, true); err != nil {
			report.Errors = append(report.Errors, err)
			log.Error("Failed to import package %s: %v", path, err)
			continue
		}
		report.Imported = append(report.Imported, path)
		log.Info("Package imported from %s", path)
	}
	return report
}
