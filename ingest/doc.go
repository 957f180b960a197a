// Package ingest provides bulk loading of company profiles from CSV.
//
// The Loader type manages the load workflow:
//   - Parsing and validating rows serially
//   - Skipping duplicates by company fingerprint
//   - Creating profiles concurrently on a worker pool
//
// Profile creation embeds over the network, so it runs on the pool and is
// retried with exponential backoff. Row-level failures are logged and counted
// but never abort the load.
package ingest
