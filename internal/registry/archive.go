package registry

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Entry names inside a .unitypackage asset folder.
const (
	unityPathname  = "pathname"
	unityAsset     = "asset"
	unityAssetMeta = "asset.meta"
)

// Importer unpacks package archives into a project.
type Importer struct {
	ProjectDir string
}

// ImportArchive imports a .unitypackage or a plain tar.gz. Unity packages
// are laid out as <guid>/{pathname,asset,asset.meta} and each asset lands
// at its pathname relative to the project. Archives without pathname
// entries are extracted as-is under Assets. Existing files are replaced only
// when overwrite is set. Nothing is written if any target path is unsafe.
func (im *Importer) ImportArchive(archivePath string, overwrite bool) error {
	if _, err := os.Stat(archivePath); errors.Is(err, fs.ErrNotExist) {
		return &PackageFileNotFoundError{Path: archivePath}
	}

	assets, err := scanUnityPackage(archivePath)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return extractTarGz(archivePath, filepath.Join(im.ProjectDir, AssetsDir), 0, overwrite)
	}

	for guid, a := range assets {
		if a.hasAsset {
			continue
		}
		// Folder assets only carry a meta file.
		dir, _ := safeJoin(im.ProjectDir, a.pathname)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating folder for %s: %w", guid, err)
		}
	}

	return walkTarGz(archivePath, func(hdr *tar.Header, r io.Reader) error {
		guid, name, ok := strings.Cut(strings.TrimPrefix(path.Clean(hdr.Name), "./"), "/")
		if !ok || hdr.Typeflag != tar.TypeReg {
			return nil
		}
		a, found := assets[guid]
		if !found {
			return nil
		}

		var target string
		switch name {
		case unityAsset:
			target = a.pathname
		case unityAssetMeta:
			target = a.pathname + ".meta"
		default:
			return nil
		}

		dest, err := safeJoin(im.ProjectDir, target)
		if err != nil {
			return err
		}
		return writeEntry(dest, r, hdr.FileInfo().Mode(), overwrite)
	})
}

type unityAssetInfo struct {
	pathname string
	hasAsset bool
}

// scanUnityPackage collects the pathname of every asset folder and checks
// that all of them stay inside the project.
func scanUnityPackage(archivePath string) (map[string]*unityAssetInfo, error) {
	assets := map[string]*unityAssetInfo{}
	get := func(guid string) *unityAssetInfo {
		a, ok := assets[guid]
		if !ok {
			a = &unityAssetInfo{}
			assets[guid] = a
		}
		return a
	}

	err := walkTarGz(archivePath, func(hdr *tar.Header, r io.Reader) error {
		guid, name, ok := strings.Cut(strings.TrimPrefix(path.Clean(hdr.Name), "./"), "/")
		if !ok || hdr.Typeflag != tar.TypeReg {
			return nil
		}
		switch name {
		case unityPathname:
			data, err := io.ReadAll(io.LimitReader(r, 4096))
			if err != nil {
				return fmt.Errorf("reading pathname of %s: %w", guid, err)
			}
			// Older exporters append extra lines after the path.
			first, _, _ := strings.Cut(string(data), "\n")
			p := strings.TrimSpace(first)
			if _, err := safeJoin("", p); err != nil {
				return err
			}
			get(guid).pathname = p
		case unityAsset:
			get(guid).hasAsset = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for guid, a := range assets {
		if a.pathname == "" {
			delete(assets, guid)
		}
	}
	return assets, nil
}

// extractTarGz unpacks every regular file and directory of a tar.gz into
// destDir, dropping the first strip path components.
func extractTarGz(archivePath, destDir string, strip int, overwrite bool) error {
	// Validate every path before writing anything.
	err := walkTarGz(archivePath, func(hdr *tar.Header, _ io.Reader) error {
		if rel, ok := stripComponents(hdr.Name, strip); ok {
			_, err := safeJoin(destDir, rel)
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	return walkTarGz(archivePath, func(hdr *tar.Header, r io.Reader) error {
		rel, ok := stripComponents(hdr.Name, strip)
		if !ok {
			return nil
		}
		dest, err := safeJoin(destDir, rel)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			return os.MkdirAll(dest, 0755)
		case tar.TypeReg:
			return writeEntry(dest, r, hdr.FileInfo().Mode(), overwrite)
		default:
			// Links and devices are not part of package content.
			return nil
		}
	})
}

// walkTarGz calls fn for every entry of a gzip-compressed tar archive.
func walkTarGz(archivePath string, fn func(*tar.Header, io.Reader) error) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}
		if err := fn(hdr, tr); err != nil {
			return err
		}
	}
}

// stripComponents drops the first n slash-separated components of name.
// It reports false when nothing is left.
func stripComponents(name string, n int) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	for i := 0; i < n; i++ {
		_, rest, ok := strings.Cut(name, "/")
		if !ok {
			return "", false
		}
		name = rest
	}
	name = strings.TrimSuffix(name, "/")
	return name, name != ""
}

// safeJoin joins a slash-separated relative path onto base, rejecting
// absolute paths and paths that climb out of base.
func safeJoin(base, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty path in archive")
	}
	if path.IsAbs(rel) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("unsafe absolute path in archive: %s", rel)
	}
	clean := path.Clean(strings.ReplaceAll(rel, `\`, "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("unsafe path in archive: %s", rel)
	}
	return filepath.Join(base, filepath.FromSlash(clean)), nil
}

// writeEntry copies r to dest, creating parent directories. Existing files
// are kept unless overwrite is set.
func writeEntry(dest string, r io.Reader, mode fs.FileMode, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", dest, err)
	}
	return out.Close()
}
