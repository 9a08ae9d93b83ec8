// Package github is a thin HTTP adapter for the GitHub REST API.
//
// It covers the three calls the reviewer needs: fetching a pull
// request's metadata, fetching its unified diff, and submitting a
// single review with inline comments. API failures are mapped to the
// shared typed error so retry behavior is uniform across adapters.
package github
