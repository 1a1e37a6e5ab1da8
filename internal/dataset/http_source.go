package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tollgrid/tollgrid/internal/resilience"
)

// SourceConfig holds configuration for the remote dataset source.
type SourceConfig struct {
	// BaseURL is the origin serving the CSV snapshots, e.g.
	// https://data.example.org/tollgrid.
	BaseURL string

	// SegmentsPath, VehicleCountsPath and ObservationsPath name the
	// snapshot files under BaseURL.
	SegmentsPath      string
	VehicleCountsPath string
	ObservationsPath  string

	// Client is the resilient HTTP client to fetch with. If nil, a
	// default client named "dataset-source" is used.
	Client *resilience.Client
}

// DefaultSourceConfig returns the default snapshot paths for a base
// URL.
func DefaultSourceConfig(baseURL string) SourceConfig {
	return SourceConfig{
		BaseURL:           baseURL,
		SegmentsPath:      "segments.csv",
		VehicleCountsPath: "vehicle_counts.csv",
		ObservationsPath:  "trip_reviews.csv",
	}
}

// Source fetches dataset snapshots from a remote origin and imports
// them into a repository. Fetches go through the resilient client, so
// transient origin failures are retried and a flapping origin trips
// the circuit breaker instead of hammering it.
type Source struct {
	config SourceConfig
	client *resilience.Client
}

// NewSource creates a remote dataset source.
func NewSource(config SourceConfig) *Source {
	client := config.Client
	if client == nil {
		client = resilience.NewClient(resilience.DefaultClientConfig("dataset-source"))
	}
	return &Source{config: config, client: client}
}

// Sync fetches all three snapshots and replaces the repository's
// datasets. Any fetch or decode failure aborts the sync before any
// dataset is replaced, so the repository never holds a partial import.
func (s *Source) Sync(ctx context.Context, importer Importer) error {
	segResp, err := s.fetch(ctx, s.config.SegmentsPath)
	if err != nil {
		return fmt.Errorf("fetch segments: %w", err)
	}
	defer segResp.Body.Close()
	segments, err := ReadSegments(segResp.Body)
	if err != nil {
		return fmt.Errorf("decode segments: %w", err)
	}

	countResp, err := s.fetch(ctx, s.config.VehicleCountsPath)
	if err != nil {
		return fmt.Errorf("fetch vehicle counts: %w", err)
	}
	defer countResp.Body.Close()
	counts, err := ReadVehicleCounts(countResp.Body)
	if err != nil {
		return fmt.Errorf("decode vehicle counts: %w", err)
	}

	obsResp, err := s.fetch(ctx, s.config.ObservationsPath)
	if err != nil {
		return fmt.Errorf("fetch observations: %w", err)
	}
	defer obsResp.Body.Close()
	observations, err := ReadObservations(obsResp.Body)
	if err != nil {
		return fmt.Errorf("decode observations: %w", err)
	}

	if err := importer.ReplaceSegments(ctx, segments); err != nil {
		return fmt.Errorf("import segments: %w", err)
	}
	if err := importer.ReplaceVehicleCounts(ctx, counts); err != nil {
		return fmt.Errorf("import vehicle counts: %w", err)
	}
	if err := importer.ReplaceObservations(ctx, observations); err != nil {
		return fmt.Errorf("import observations: %w", err)
	}
	return nil
}

func (s *Source) fetch(ctx context.Context, path string) (*http.Response, error) {
	u, err := url.JoinPath(s.config.BaseURL, path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, u)
	}
	return resp, nil
}
