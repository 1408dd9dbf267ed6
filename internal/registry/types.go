package registry

// StatusCode is the state of a Request.
type StatusCode int

const (
	InProgress StatusCode = iota
	Success
	Failure
)

// String returns the string representation of the StatusCode.
func (c StatusCode) String() string {
	switch c {
	case InProgress:
		return "InProgress"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// IsFailure reports whether c is a failure code. Codes at or above Failure
// all count.
func IsFailure(c StatusCode) bool {
	return c >= Failure
}

// Package sources.
const (
	SourceRegistry = "registry"
	SourceGit      = "git"
	SourceLocal    = "local"
)

// PackageInfo describes a package known to the registry or the project.
type PackageInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Description  string `json:"description,omitempty"`
	Source       string `json:"source,omitempty"`
	ResolvedPath string `json:"resolvedPath,omitempty"`
}

// packument is the registry document for one package.
type packument struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	DistTags    map[string]string         `json:"dist-tags"`
	Versions    map[string]packageVersion `json:"versions"`
}

type packageVersion struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Dist        dist   `json:"dist"`
}

type dist struct {
	Tarball string `json:"tarball"`
	Shasum  string `json:"shasum"`
}

// searchResponse is the body of GET /-/v1/search.
type searchResponse struct {
	Objects []struct {
		Package struct {
			Name        string `json:"name"`
			Version     string `json:"version"`
			Description string `json:"description"`
		} `json:"package"`
	} `json:"objects"`
	Total int `json:"total"`
}
