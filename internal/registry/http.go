package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/initium-labs/initium/internal/branding"
)

// HTTPClient is a Service backed by an npm-style registry. Adds run in
// their own goroutines but are applied one at a time.
type HTTPClient struct {
	baseURL    string
	projectDir string
	httpClient *http.Client
	importer   *Importer

	// mu serializes adds; the manifest and package cache are shared.
	mu sync.Mutex
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.httpClient = c
	}
}

// NewHTTPClient creates a client for the registry at baseURL acting on the
// project at projectDir.
func NewHTTPClient(baseURL, projectDir string, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		projectDir: projectDir,
		httpClient: http.DefaultClient,
		importer:   &Importer{ProjectDir: projectDir},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BaseURL returns the registry URL.
func (h *HTTPClient) BaseURL() string { return h.baseURL }

// Add resolves, downloads and records a package. The returned request
// completes in the background.
func (h *HTTPClient) Add(ctx context.Context, identifier string) *AddRequest {
	req := NewRequest[PackageInfo]()
	go func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		info, err := h.add(ctx, identifier)
		if err != nil {
			req.Fail(asServiceError(err))
			return
		}
		req.Complete(info)
	}()
	return req
}

// List reports the packages recorded in the project manifest.
func (h *HTTPClient) List(ctx context.Context) *ListRequest {
	req := NewRequest[[]PackageInfo]()
	go func() {
		m, err := ReadManifest(h.projectDir)
		if err != nil {
			req.Fail(asServiceError(err))
			return
		}
		req.Complete(m.Packages())
	}()
	return req
}

// ImportArchive imports a package archive into the project.
func (h *HTTPClient) ImportArchive(path string, overwrite bool) error {
	return h.importer.ImportArchive(path, overwrite)
}

func (h *HTTPClient) add(ctx context.Context, identifier string) (PackageInfo, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return PackageInfo{}, err
	}

	m, err := ReadManifest(h.projectDir)
	if err != nil {
		return PackageInfo{}, err
	}

	if id.IsURL() {
		m.Dependencies[id.Name] = id.URL
		if err := m.Write(); err != nil {
			return PackageInfo{}, err
		}
		return PackageInfo{Name: id.Name, Version: id.URL, Source: id.Source()}, nil
	}

	doc, err := h.fetchPackument(ctx, id.Name)
	if err != nil {
		return PackageInfo{}, err
	}
	version, err := resolveVersion(doc, id.Constraint)
	if err != nil {
		return PackageInfo{}, err
	}

	pv := doc.Versions[version]
	info := PackageInfo{
		Name:         id.Name,
		Version:      version,
		Description:  firstNonEmpty(pv.Description, doc.Description),
		Source:       SourceRegistry,
		ResolvedPath: filepath.Join(h.projectDir, filepath.FromSlash(CacheDir), id.Name+"@"+version),
	}

	if m.Dependencies[id.Name] == version {
		return info, nil
	}

	if pv.Dist.Tarball == "" {
		return PackageInfo{}, serviceErrorf(ErrNotFound, "no tarball for %s@%s", id.Name, version)
	}
	if err := h.install(ctx, pv.Dist, info.ResolvedPath); err != nil {
		return PackageInfo{}, err
	}

	m.Dependencies[id.Name] = version
	if err := m.Write(); err != nil {
		return PackageInfo{}, err
	}
	return info, nil
}

// install downloads a tarball, checks it and unpacks it into dest.
func (h *HTTPClient) install(ctx context.Context, d dist, dest string) error {
	tmp, err := os.MkdirTemp("", branding.CLIName()+"-pkg-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	archive, err := h.download(ctx, d.Tarball, tmp)
	if err != nil {
		return err
	}
	if d.Shasum != "" {
		if err := verifySHA1(archive, d.Shasum); err != nil {
			return serviceErrorf(ErrConflict, "%v", err)
		}
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("clearing %s: %w", dest, err)
	}
	// npm tarballs wrap their content in a single top-level folder.
	if err := extractTarGz(archive, dest, 1, true); err != nil {
		return fmt.Errorf("extracting package: %w", err)
	}
	return nil
}

func (h *HTTPClient) fetchPackument(ctx context.Context, name string) (*packument, error) {
	body, err := h.get(ctx, h.baseURL+"/"+url.PathEscape(name))
	if err != nil {
		var se *ServiceError
		if errors.As(err, &se) && se.Code == ErrNotFound {
			return nil, serviceErrorf(ErrNotFound, "Package %s not found in registry %s", name, h.baseURL)
		}
		return nil, err
	}

	var doc packument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing package document for %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return &doc, nil
}

// Search queries the registry's search endpoint.
func (h *HTTPClient) Search(ctx context.Context, query string, size int) ([]PackageInfo, error) {
	q := url.Values{}
	q.Set("text", query)
	q.Set("size", fmt.Sprint(size))

	body, err := h.get(ctx, h.baseURL+"/-/v1/search?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	out := make([]PackageInfo, 0, len(resp.Objects))
	for _, o := range resp.Objects {
		out = append(out, PackageInfo{
			Name:        o.Package.Name,
			Version:     o.Package.Version,
			Description: o.Package.Description,
			Source:      SourceRegistry,
		})
	}
	return out, nil
}

func (h *HTTPClient) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent())

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, serviceErrorf(ErrNotFound, "%s not found", u)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, serviceErrorf(ErrForbidden, "registry refused %s with status %d", u, resp.StatusCode)
	default:
		return nil, serviceErrorf(ErrUnknown, "registry returned status %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

func userAgent() string {
	return branding.CLIName() + "-fetcher"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
