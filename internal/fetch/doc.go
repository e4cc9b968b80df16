// Package fetch provides the transport primitives used to populate dataset
// directories: streaming HTTP downloads with progress reporting, ZIP
// extraction and a small filesystem probe.
//
// Every operation reports failure as a *Error carrying a Kind, so callers can
// tell network problems from archive problems without string matching.
package fetch
