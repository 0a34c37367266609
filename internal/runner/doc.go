// Package runner walks the configured leagues and seasons, fetching each
// schedule, skipping fixtures already stored, and appending the new ones
// together with their match report statistics.
package runner
