// Package kaggle is a minimal client for the Kaggle dataset API.
//
// It covers the two things dsfetch needs: deciding whether the API is usable
// (Probe) and downloading a dataset archive straight into a directory
// (Client.DownloadAndUnzip). Credentials are discovered the same way the
// official Kaggle tooling does it.
package kaggle
