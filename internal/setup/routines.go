package setup

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/fetch"
	"github.com/leapstack-labs/dsfetch/internal/kaggle"
)

// Routines holds what the per-dataset routines need.
type Routines struct {
	Downloader *fetch.Downloader
	Reporter   Reporter
	Logger     *slog.Logger
}

// RunOpen downloads, extracts and cleans up each open dataset whose
// destination is not yet populated. A failing dataset does not stop the
// others. When extraction fails the downloaded archive is left in place.
// Once ctx is done no further dataset is started; those left are recorded as
// failed with ctx.Err().
func (rt *Routines) RunOpen(ctx context.Context, datasets catalog.Catalog) []Outcome {
	outcomes := make([]Outcome, 0, len(datasets))
	for i, d := range datasets {
		if ctx.Err() != nil {
			return append(outcomes, Abandon(datasets[i:], ctx.Err())...)
		}
		outcomes = append(outcomes, rt.runOpen(ctx, d))
	}
	return outcomes
}

func (rt *Routines) runOpen(ctx context.Context, d catalog.Dataset) Outcome {
	rep := rt.Reporter
	log := rt.Logger.With("dataset", d.Name)

	if fetch.IsPopulated(d.Dest) {
		rep.Warning(fmt.Sprintf("%s already exists. Skipping...", d.Name))
		log.Debug("destination populated, skipping", "dest", d.Dest)
		return newOutcome(d, StatusSkipped, nil)
	}

	archive := d.ArchivePath()
	rep.Info(fmt.Sprintf("Downloading %s...", d.Name))
	if _, err := rt.Downloader.Download(ctx, d.Source, archive); err != nil {
		rep.Error(fmt.Sprintf("Failed to download %s: %v", d.Name, err))
		log.Warn("download failed", "url", d.Source, "error", err)
		return newOutcome(d, StatusFailed, err)
	}
	rep.Success(fmt.Sprintf("Downloaded %s", d.Name))

	rep.Info(fmt.Sprintf("Extracting %s...", d.Name))
	if _, err := fetch.Extract(archive, d.ExtractTo); err != nil {
		rep.Error(fmt.Sprintf("Failed to extract %s: %v", d.Name, err))
		log.Warn("extraction failed", "archive", archive, "error", err)
		return newOutcome(d, StatusFailed, err)
	}
	rep.Success(fmt.Sprintf("Extracted %s", d.Name))

	if err := os.Remove(archive); err != nil {
		rep.Warning(fmt.Sprintf("Could not remove %s: %v", archive, err))
		log.Warn("archive cleanup failed", "archive", archive, "error", err)
	}

	if err := checkMarker(d); err != nil {
		rep.Error(fmt.Sprintf("%s: %v", d.Name, err))
		return newOutcome(d, StatusFailed, err)
	}
	rep.Success(fmt.Sprintf("%s setup complete", d.Name))
	return newOutcome(d, StatusCompleted, nil)
}

// RunGated handles datasets behind the Kaggle API. Populated destinations are
// skipped. Without API access, numbered manual instructions are printed for
// the remaining datasets and nothing is downloaded.
func (rt *Routines) RunGated(ctx context.Context, datasets catalog.Catalog, access kaggle.Access) []Outcome {
	rep := rt.Reporter
	outcomes := make([]Outcome, 0, len(datasets))

	var pending catalog.Catalog
	for _, d := range datasets {
		if fetch.IsPopulated(d.Dest) {
			rep.Success(fmt.Sprintf("%s: Already exists", d.Name))
			outcomes = append(outcomes, newOutcome(d, StatusSkipped, nil))
			continue
		}
		pending = append(pending, d)
	}
	if len(pending) == 0 {
		return outcomes
	}

	if !access.Available {
		rep.Warning("Kaggle API not configured - Manual download required")
		for i, d := range pending {
			if i > 0 {
				rep.Println("")
			}
			rt.printManualInstructions(d)
			outcomes = append(outcomes, newOutcome(d, StatusManual, access.Reason))
		}
		return outcomes
	}

	for i, d := range pending {
		if ctx.Err() != nil {
			return append(outcomes, Abandon(pending[i:], ctx.Err())...)
		}
		outcomes = append(outcomes, rt.runGated(ctx, d, access.Client))
	}
	return outcomes
}

func (rt *Routines) runGated(ctx context.Context, d catalog.Dataset, client *kaggle.Client) Outcome {
	rep := rt.Reporter
	log := rt.Logger.With("dataset", d.Name)

	rep.Info(fmt.Sprintf("Downloading %s from Kaggle...", d.Name))
	if err := client.DownloadAndUnzip(ctx, d.Source, d.Dest); err != nil {
		rep.Error(fmt.Sprintf("Failed to download %s: %v", d.Name, err))
		log.Warn("kaggle download failed", "ref", d.Source, "error", err)
		return newOutcome(d, StatusFailed, err)
	}

	if err := checkMarker(d); err != nil {
		rep.Error(fmt.Sprintf("%s: %v", d.Name, err))
		return newOutcome(d, StatusFailed, err)
	}
	rep.Success(fmt.Sprintf("%s downloaded and extracted", d.Name))
	return newOutcome(d, StatusCompleted, nil)
}

func (rt *Routines) printManualInstructions(d catalog.Dataset) {
	rep := rt.Reporter
	what := d.Extract
	if what == "" {
		what = "all files"
	}

	rep.Info(d.Name + ":")
	for i, step := range []string{
		"Go to: " + d.SourceURL(),
		"Click 'Download' button (requires Kaggle login)",
		fmt.Sprintf("Extract %s to: %s/", what, d.Dest),
	} {
		rep.Printf("  %d. %s\n", i+1, step)
	}
}

func checkMarker(d catalog.Dataset) error {
	if fetch.Present(d.Marker) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMarkerMissing, d.Marker)
}
