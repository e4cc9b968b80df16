package setup

import (
	"errors"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
)

// ErrMarkerMissing means a dataset was fetched but its marker path does not
// exist afterwards.
var ErrMarkerMissing = errors.New("marker not found after setup")

// Status is the result of handling one dataset.
type Status string

// Outcome statuses.
const (
	StatusSkipped   Status = "skipped"   // destination already populated
	StatusCompleted Status = "completed" // fetched and marker present
	StatusFailed    Status = "failed"    // a step failed, see Err
	StatusManual    Status = "manual"    // instructions printed, nothing fetched
)

// Outcome records what happened to one dataset during a run.
type Outcome struct {
	Dataset string `json:"dataset"`
	Family  string `json:"family"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`

	Err error `json:"-"`
}

func newOutcome(d catalog.Dataset, status Status, err error) Outcome {
	o := Outcome{Dataset: d.Name, Family: d.Family, Status: status, Err: err}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// Abandon records every dataset as failed with err, without touching them.
func Abandon(datasets catalog.Catalog, err error) []Outcome {
	outcomes := make([]Outcome, 0, len(datasets))
	for _, d := range datasets {
		outcomes = append(outcomes, newOutcome(d, StatusFailed, err))
	}
	return outcomes
}

// Count returns how many outcomes have the given status.
func Count(outcomes []Outcome, status Status) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
