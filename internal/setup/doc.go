// Package setup populates dataset directories and verifies the result.
//
// Two routines handle the two dataset kinds: RunOpen downloads and extracts
// public archives, RunGated goes through the Kaggle API or prints manual
// instructions when the API is unavailable. Both skip datasets whose
// destination directory is already populated, so re-running is safe.
//
// Runner sequences everything for a single invocation and never stops early:
// each failure is reported and recorded as an Outcome.
package setup
