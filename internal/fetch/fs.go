package fetch

import (
	"os"
	"strings"
)

// stagingPrefix names the temporary directories Extract unpacks into.
const stagingPrefix = ".extract-"

func isStaging(name string) bool {
	return strings.HasPrefix(name, stagingPrefix)
}

// IsPopulated reports whether dir exists, is a directory and contains at least
// one entry. Staging directories left by an interrupted Extract do not count.
func IsPopulated(dir string) bool {
	f, err := os.Open(dir) //nolint:gosec // dataset paths come from the catalog
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || !info.IsDir() {
		return false
	}

	for {
		names, err := f.Readdirnames(16)
		for _, name := range names {
			if !isStaging(name) {
				return true
			}
		}
		if err != nil {
			// io.EOF once every entry was read
			return false
		}
	}
}

// Present reports whether a dataset marker is satisfied: a regular file must
// exist, a directory must be populated.
func Present(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return IsPopulated(path)
	}
	return true
}
