package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/fetch"
	"github.com/leapstack-labs/dsfetch/internal/kaggle"
)

// Banner is the title printed at the start of a run.
const Banner = "Movie Recommendation Systems - Dataset Setup"

// Options configures a Runner.
type Options struct {
	// RunID identifies the run in logs and in the Result.
	RunID string

	Root       string
	Catalog    catalog.Catalog
	Downloader *fetch.Downloader
	Probe      kaggle.ProbeOptions
	Reporter   Reporter
	Logger     *slog.Logger
}

// Result summarizes a run.
type Result struct {
	RunID           string    `json:"run_id,omitempty"`
	Root            string    `json:"root"`
	KaggleAvailable bool      `json:"kaggle_available"`
	Outcomes        []Outcome `json:"outcomes"`
	Report          Report    `json:"verification"`
	AllPresent      bool      `json:"all_present"`

	// Interrupted is set when the context was cancelled before the run
	// finished. Verification and the summary are skipped in that case.
	Interrupted bool `json:"interrupted,omitempty"`
}

// Runner sequences a complete setup run.
type Runner struct {
	opts     Options
	routines *Routines
	logger   *slog.Logger
}

// NewRunner creates a Runner. A nil Downloader or Logger gets a default.
func NewRunner(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Downloader == nil {
		opts.Downloader = fetch.NewDownloader(fetch.WithLogger(opts.Logger))
	}
	if opts.Probe.Downloader == nil {
		opts.Probe.Downloader = opts.Downloader
	}
	if opts.Probe.Logger == nil {
		opts.Probe.Logger = opts.Logger
	}
	return &Runner{
		opts: opts,
		routines: &Routines{
			Downloader: opts.Downloader,
			Reporter:   opts.Reporter,
			Logger:     opts.Logger,
		},
		logger: opts.Logger,
	}
}

// Run performs every step regardless of earlier failures: banner, root
// directory, credential probe, each family in catalog order, verification and
// the final summary. Cancelling ctx is the one exception: no new dataset is
// started, the remaining ones are recorded as failed, and the run ends without
// verification or summary.
func (r *Runner) Run(ctx context.Context) Result {
	rep := r.opts.Reporter
	log := r.logger

	rep.Header(Banner)
	rep.Println("This will download and set up all required datasets.")
	rep.Println("")

	if err := os.MkdirAll(r.opts.Root, 0o750); err != nil {
		rep.Error(fmt.Sprintf("Could not create %s: %v", r.opts.Root, err))
		log.Error("create root failed", "root", r.opts.Root, "error", err)
	}

	access := kaggle.Probe(r.opts.Probe)
	r.reportAccess(access)
	if !access.Available {
		rep.Println("")
		r.printKaggleInstructions(access)
	}

	result := Result{
		RunID:           r.opts.RunID,
		Root:            r.opts.Root,
		KaggleAvailable: access.Available,
	}

	for _, family := range r.opts.Catalog.Families() {
		datasets := r.opts.Catalog.Family(family)
		if ctx.Err() != nil {
			result.Outcomes = append(result.Outcomes, Abandon(datasets, ctx.Err())...)
			continue
		}
		rep.Header(familyTitle(family, len(datasets)))

		var open, gated catalog.Catalog
		for _, d := range datasets {
			if d.Kind == catalog.KindOpen {
				open = append(open, d)
			} else {
				gated = append(gated, d)
			}
		}
		if len(open) > 0 {
			result.Outcomes = append(result.Outcomes, r.routines.RunOpen(ctx, open)...)
		}
		if len(gated) > 0 {
			result.Outcomes = append(result.Outcomes, r.routines.RunGated(ctx, gated, access)...)
		}
	}

	if err := ctx.Err(); err != nil {
		result.Interrupted = true
		rep.Println("")
		rep.Error(fmt.Sprintf("Setup interrupted: %v", err))
		rep.Info("Run dsfetch again to resume; finished datasets are kept.")
		log.Warn("setup interrupted",
			"completed", Count(result.Outcomes, StatusCompleted),
			"failed", Count(result.Outcomes, StatusFailed),
			"error", err)
		return result
	}

	rep.Header("Verification")
	result.Report = Verify(r.opts.Catalog)
	PrintReport(rep, result.Report)
	result.AllPresent = result.Report.AllPresent()

	r.printSummary(result)

	log.Info("setup finished",
		"completed", Count(result.Outcomes, StatusCompleted),
		"skipped", Count(result.Outcomes, StatusSkipped),
		"failed", Count(result.Outcomes, StatusFailed),
		"manual", Count(result.Outcomes, StatusManual),
		"all_present", result.AllPresent)
	return result
}

func (r *Runner) reportAccess(access kaggle.Access) {
	rep := r.opts.Reporter
	switch {
	case access.Available:
		rep.Success("Kaggle API is configured")
		r.logger.Debug("kaggle api available", "origin", access.Origin)
	case errors.Is(access.Reason, kaggle.ErrNotInstalled):
		rep.Error("Kaggle client not installed (disabled by configuration)")
	default:
		rep.Error("Kaggle API credentials not found")
	}
}

func (r *Runner) printKaggleInstructions(access kaggle.Access) {
	rep := r.opts.Reporter

	if errors.Is(access.Reason, kaggle.ErrNotInstalled) {
		rep.Info("Gated datasets will need a manual download.")
		rep.Println("To use the Kaggle API, set kaggle.enabled: true in dsfetch.yaml or drop --no-kaggle.")
		return
	}

	location := "~/.kaggle/kaggle.json"
	if runtime.GOOS == "windows" {
		location = `C:\Users\<username>\.kaggle\kaggle.json`
	}

	rep.Info("Kaggle API Setup Instructions:")
	steps := []string{
		"Create a Kaggle account at https://www.kaggle.com",
		"Go to Account settings: https://www.kaggle.com/settings/account",
		"Scroll to 'API' section and click 'Create New Token'",
		"This downloads kaggle.json",
		"Place kaggle.json in: " + location,
	}
	if runtime.GOOS != "windows" {
		steps = append(steps, "Run: chmod 600 "+location)
	}
	for i, step := range steps {
		rep.Printf("  %d. %s\n", i+1, step)
	}
	rep.Printf("  Alternatively export %s and %s.\n", kaggle.EnvUsername, kaggle.EnvKey)
}

func (r *Runner) printSummary(result Result) {
	rep := r.opts.Reporter

	rep.Header("Setup Complete")
	if result.AllPresent {
		rep.Success("All datasets are ready!")
		rep.Info(fmt.Sprintf("Datasets are available under %s/", r.opts.Root))
		rep.Println("")
		return
	}

	rep.Warning("Some datasets are missing.")
	if !result.KaggleAvailable {
		rep.Println("")
		rep.Info("For Kaggle datasets, you can:")
		rep.Println("  Option 1: Set up the Kaggle API and run dsfetch again")
		rep.Println("  Option 2: Download manually from the URLs shown above")
	}
	rep.Println("")
	rep.Info("Place downloaded files in the folders shown above and run dsfetch again to verify.")
	rep.Println("")
}

func familyTitle(family string, n int) string {
	if n > 1 {
		return family + " Datasets"
	}
	return family + " Dataset"
}
