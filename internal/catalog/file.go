package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout of a user catalog file.
type fileFormat struct {
	Datasets []Dataset `yaml:"datasets"`
}

// LoadFile reads a YAML catalog file. Relative dest, extract_to and marker
// paths are resolved against root.
//
//	datasets:
//	  - name: MovieLens 100K
//	    family: MovieLens
//	    kind: open
//	    source: https://files.grouplens.org/datasets/movielens/ml-100k.zip
//	    dest: MovieLens/ml-100k
//	    archive: ml-100k.zip
//	    extract_to: MovieLens
//	    marker: MovieLens/ml-100k/u.data
func LoadFile(path, root string) (Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data, root)
}

// Parse decodes a YAML catalog document. Unknown fields are rejected.
func Parse(data []byte, root string) (Catalog, error) {
	var doc fileFormat
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	out := make(Catalog, 0, len(doc.Datasets))
	for _, d := range doc.Datasets {
		d.Dest = resolve(d.Dest, root)
		d.ExtractTo = resolve(d.ExtractTo, root)
		d.Marker = resolve(d.Marker, root)
		if d.Kind == "" {
			d.Kind = KindGated
		}
		out = append(out, d)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return out, nil
}

func resolve(path, root string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
