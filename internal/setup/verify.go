package setup

import (
	"fmt"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/fetch"
)

// Check is one verification entry.
type Check struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Found bool   `json:"found"`
}

// Report is the result of a verification pass.
type Report struct {
	Checks []Check `json:"checks"`
}

// AllPresent reports whether every marker was found.
func (r Report) AllPresent() bool {
	for _, c := range r.Checks {
		if !c.Found {
			return false
		}
	}
	return true
}

// Missing returns the checks whose marker was not found.
func (r Report) Missing() []Check {
	var missing []Check
	for _, c := range r.Checks {
		if !c.Found {
			missing = append(missing, c)
		}
	}
	return missing
}

// Verify checks the marker of every dataset in catalog order. It only reads
// the filesystem.
func Verify(datasets catalog.Catalog) Report {
	checks := make([]Check, 0, len(datasets))
	for _, d := range datasets {
		checks = append(checks, Check{
			Name:  d.Name,
			Path:  d.Marker,
			Found: fetch.Present(d.Marker),
		})
	}
	return Report{Checks: checks}
}

// PrintReport writes one Found/Missing line per check.
func PrintReport(rep Reporter, report Report) {
	for _, c := range report.Checks {
		if c.Found {
			rep.Success(fmt.Sprintf("%s: Found", c.Name))
		} else {
			rep.Error(fmt.Sprintf("%s: Missing", c.Name))
		}
	}
}
