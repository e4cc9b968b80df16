// Package catalog declares the datasets dsfetch knows how to obtain.
//
// A catalog is an ordered list of immutable Dataset records. Both setup
// routines and the verification pass consume the same records, so adding a
// dataset is a matter of adding one entry.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind selects which setup routine handles a dataset.
type Kind string

const (
	// KindOpen datasets are plain HTTPS archive downloads.
	KindOpen Kind = "open"

	// KindGated datasets require the Kaggle API or a manual browser download.
	KindGated Kind = "gated"
)

// KaggleDatasetURL is the browser URL prefix for Kaggle dataset pages.
const KaggleDatasetURL = "https://www.kaggle.com/datasets/"

// Dataset describes one dataset: where it comes from, where it goes and which
// path proves it is present.
type Dataset struct {
	Name   string `yaml:"name" json:"name"`
	Family string `yaml:"family" json:"family"`
	Kind   Kind   `yaml:"kind" json:"kind"`

	// Source is an archive URL for open datasets and an "owner/slug"
	// Kaggle reference for gated ones.
	Source string `yaml:"source" json:"source"`

	// Dest is the directory that must be non-empty for the dataset to be
	// considered installed.
	Dest string `yaml:"dest" json:"dest"`

	// Archive is the file name the open archive is saved under, inside
	// ExtractTo. Unused for gated datasets.
	Archive string `yaml:"archive,omitempty" json:"archive,omitempty"`

	// ExtractTo is the directory the open archive is unpacked into. The
	// archive is expected to create Dest below it.
	ExtractTo string `yaml:"extract_to,omitempty" json:"extract_to,omitempty"`

	// Marker is the file or directory whose existence verification checks.
	Marker string `yaml:"marker" json:"marker"`

	// Extract describes what to unpack in manual instructions, for example
	// "netflix_titles.csv" or "all CSV files".
	Extract string `yaml:"extract,omitempty" json:"extract,omitempty"`
}

// SourceURL returns the URL a human would visit to obtain the dataset.
func (d Dataset) SourceURL() string {
	if d.Kind == KindGated {
		return KaggleDatasetURL + d.Source
	}
	return d.Source
}

// ArchivePath returns where the open archive is downloaded to.
func (d Dataset) ArchivePath() string {
	if d.Archive == "" {
		return ""
	}
	return filepath.Join(d.ExtractTo, d.Archive)
}

// Validate checks that the record is complete for its kind.
func (d Dataset) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dataset name is required")
	}
	if d.Family == "" {
		return fmt.Errorf("dataset %q: family is required", d.Name)
	}
	if d.Dest == "" {
		return fmt.Errorf("dataset %q: dest is required", d.Name)
	}
	if d.Marker == "" {
		return fmt.Errorf("dataset %q: marker is required", d.Name)
	}

	switch d.Kind {
	case KindOpen:
		if !strings.HasPrefix(d.Source, "https://") && !strings.HasPrefix(d.Source, "http://") {
			return fmt.Errorf("dataset %q: open source must be an http(s) URL, got %q", d.Name, d.Source)
		}
		if d.Archive == "" || d.ExtractTo == "" {
			return fmt.Errorf("dataset %q: open datasets need archive and extract_to", d.Name)
		}
	case KindGated:
		if !IsKaggleRef(d.Source) {
			return fmt.Errorf("dataset %q: gated source must be an owner/slug reference, got %q", d.Name, d.Source)
		}
	default:
		return fmt.Errorf("dataset %q: unknown kind %q (expected %q or %q)", d.Name, d.Kind, KindOpen, KindGated)
	}
	return nil
}

// IsKaggleRef reports whether s has the "owner/slug" form.
func IsKaggleRef(s string) bool {
	owner, slug, ok := strings.Cut(s, "/")
	return ok && owner != "" && slug != "" && !strings.Contains(slug, "/")
}
