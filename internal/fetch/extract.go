package fetch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Extract unpacks the ZIP archive into targetDir and returns the paths of the
// extracted files.
//
// Extraction is all-or-nothing: entries are written to a staging directory
// inside targetDir and only moved into place once every entry succeeded. A
// top-level entry may replace an existing empty directory but never a
// populated one. Staging directories left behind by an interrupted earlier
// extraction are removed first.
func Extract(archive, targetDir string) ([]string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, &Error{Kind: KindArchive, Op: "open archive", Path: archive, Err: err}
	}
	defer func() { _ = r.Close() }()

	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return nil, &Error{Kind: KindArchive, Op: "create directory", Path: targetDir, Err: err}
	}

	removeStaleStaging(targetDir)

	staging, err := os.MkdirTemp(targetDir, stagingPrefix)
	if err != nil {
		return nil, &Error{Kind: KindArchive, Op: "create staging directory", Path: targetDir, Err: err}
	}
	defer func() { _ = os.RemoveAll(staging) }()

	var (
		roots []string
		seen  = make(map[string]bool)
		files []string
	)
	for _, f := range r.File {
		name := filepath.Clean(filepath.FromSlash(f.Name))
		if name == "." {
			continue
		}
		path := filepath.Join(staging, name)
		// ZipSlip
		if !strings.HasPrefix(path, filepath.Clean(staging)+string(os.PathSeparator)) {
			return nil, &Error{Kind: KindArchive, Op: "extract", Path: archive, Err: &IllegalPathError{Name: f.Name}}
		}

		root := strings.SplitN(name, string(os.PathSeparator), 2)[0]
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o750); err != nil {
				return nil, &Error{Kind: KindArchive, Op: "extract", Path: f.Name, Err: err}
			}
			continue
		}
		if err := writeEntry(f, path); err != nil {
			return nil, &Error{Kind: KindArchive, Op: "extract", Path: f.Name, Err: err}
		}
		files = append(files, filepath.Join(targetDir, name))
	}

	replace := make(map[string]bool, len(roots))
	for _, root := range roots {
		dst := filepath.Join(targetDir, root)
		info, err := os.Lstat(dst)
		if err != nil {
			continue
		}
		if !info.IsDir() || IsPopulated(dst) {
			return nil, &Error{Kind: KindArchive, Op: "extract", Path: dst, Err: os.ErrExist}
		}
		replace[root] = true
	}

	for _, root := range roots {
		dst := filepath.Join(targetDir, root)
		if replace[root] {
			if err := os.Remove(dst); err != nil {
				return nil, &Error{Kind: KindArchive, Op: "extract", Path: dst, Err: err}
			}
		}
		if err := os.Rename(filepath.Join(staging, root), dst); err != nil {
			return nil, &Error{Kind: KindArchive, Op: "extract", Path: dst, Err: err}
		}
	}

	return files, nil
}

func removeStaleStaging(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() && isStaging(e.Name()) {
			_ = os.RemoveAll(filepath.Join(dir, e.Name()))
		}
	}
}

func writeEntry(f *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) //nolint:gosec // path checked against staging dir
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // dataset archives are trusted and large
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
