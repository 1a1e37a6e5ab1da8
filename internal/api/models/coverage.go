package models

import "github.com/tollgrid/tollgrid/internal/coverage"

// CoverageReport wraps the per-pair temporal completeness results.
type CoverageReport struct {
	Pairs []coverage.PairCoverage `json:"pairs"`
}
