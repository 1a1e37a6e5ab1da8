// Package worker provides background artifact recomputation for
// TollGrid. Derived tables (unrolled distances, toll rates, coverage
// results) are rebuilt from the raw datasets and persisted so readers
// never pay the computation cost on request.
package worker

import "time"

// RefreshConfig holds configuration for the artifact refresh job.
type RefreshConfig struct {
	// Timeout is the timeout for each artifact build.
	// Default: 30 seconds
	Timeout time.Duration

	// RefreshDistances enables the unrolled distance table rebuild.
	// Default: true
	RefreshDistances bool

	// RefreshTollRates enables the base toll rate table rebuild.
	// Default: true
	RefreshTollRates bool

	// RefreshCoverage enables the completeness report rebuild.
	// Default: true
	RefreshCoverage bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Timeout:          30 * time.Second,
		RefreshDistances: true,
		RefreshTollRates: true,
		RefreshCoverage:  true,
	}
}

// TotalArtifacts returns the number of artifacts the job will build.
func (c RefreshConfig) TotalArtifacts() int {
	total := 0
	if c.RefreshDistances {
		total++
	}
	if c.RefreshTollRates {
		total++
	}
	if c.RefreshCoverage {
		total++
	}
	return total
}
