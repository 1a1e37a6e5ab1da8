package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tollgrid/tollgrid/internal/analysis"
	"github.com/tollgrid/tollgrid/internal/coverage"
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/toll"
)

// PostgresRepository is the PostgreSQL implementation of Repository,
// Importer and ArtifactStore.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL dataset repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListSegments returns the segment distance records.
func (r *PostgresRepository) ListSegments(ctx context.Context) ([]distance.PairRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_start, id_end, distance FROM toll_segments ORDER BY id_start, id_end`)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	defer rows.Close()

	var records []distance.PairRecord
	for rows.Next() {
		var rec distance.PairRecord
		if err := rows.Scan(&rec.IDStart, &rec.IDEnd, &rec.Distance); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrDatasetEmpty
	}
	return records, nil
}

// ListVehicleCounts returns the vehicle count records.
func (r *PostgresRepository) ListVehicleCounts(ctx context.Context) ([]analysis.CountRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_1, id_2, route, moto, car, rv, bus, truck FROM vehicle_counts ORDER BY id_1, id_2`)
	if err != nil {
		return nil, fmt.Errorf("list vehicle counts: %w", err)
	}
	defer rows.Close()

	var records []analysis.CountRecord
	for rows.Next() {
		var rec analysis.CountRecord
		if err := rows.Scan(&rec.ID1, &rec.ID2, &rec.Route,
			&rec.Moto, &rec.Car, &rec.RV, &rec.Bus, &rec.Truck); err != nil {
			return nil, fmt.Errorf("scan vehicle count: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrDatasetEmpty
	}
	return records, nil
}

// ListObservations returns the timestamped review observations.
func (r *PostgresRepository) ListObservations(ctx context.Context) ([]coverage.Observation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, id_2, observed_at FROM trip_reviews ORDER BY id, id_2, observed_at`)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	var records []coverage.Observation
	for rows.Next() {
		var rec coverage.Observation
		if err := rows.Scan(&rec.ID, &rec.ID2, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrDatasetEmpty
	}
	return records, nil
}

// ReplaceSegments swaps in a new segment dataset inside one
// transaction.
func (r *PostgresRepository) ReplaceSegments(ctx context.Context, records []distance.PairRecord) error {
	return r.replace(ctx, "toll_segments", func(tx pgx.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(ctx,
				`INSERT INTO toll_segments (id_start, id_end, distance) VALUES ($1, $2, $3)`,
				rec.IDStart, rec.IDEnd, rec.Distance)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceVehicleCounts swaps in a new vehicle count dataset.
func (r *PostgresRepository) ReplaceVehicleCounts(ctx context.Context, records []analysis.CountRecord) error {
	return r.replace(ctx, "vehicle_counts", func(tx pgx.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(ctx,
				`INSERT INTO vehicle_counts (id_1, id_2, route, moto, car, rv, bus, truck)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				rec.ID1, rec.ID2, rec.Route, rec.Moto, rec.Car, rec.RV, rec.Bus, rec.Truck)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceObservations swaps in a new observation dataset.
func (r *PostgresRepository) ReplaceObservations(ctx context.Context, records []coverage.Observation) error {
	return r.replace(ctx, "trip_reviews", func(tx pgx.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(ctx,
				`INSERT INTO trip_reviews (id, id_2, observed_at) VALUES ($1, $2, $3)`,
				rec.ID, rec.ID2, rec.Timestamp)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveDistancePairs replaces the derived unrolled distance table.
func (r *PostgresRepository) SaveDistancePairs(ctx context.Context, pairs []distance.PairRecord) error {
	return r.replace(ctx, "distance_pairs", func(tx pgx.Tx) error {
		for _, p := range pairs {
			_, err := tx.Exec(ctx,
				`INSERT INTO distance_pairs (id_start, id_end, distance) VALUES ($1, $2, $3)`,
				p.IDStart, p.IDEnd, p.Distance)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveTollRates replaces the derived base toll rate table.
func (r *PostgresRepository) SaveTollRates(ctx context.Context, rates []toll.RateRecord) error {
	return r.replace(ctx, "toll_rates", func(tx pgx.Tx) error {
		for _, rec := range rates {
			_, err := tx.Exec(ctx,
				`INSERT INTO toll_rates (id_start, id_end, distance, moto, car, rv, bus, truck)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				rec.IDStart, rec.IDEnd, rec.Distance,
				rec.Moto, rec.Car, rec.RV, rec.Bus, rec.Truck)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveCoverage replaces the derived completeness report.
func (r *PostgresRepository) SaveCoverage(ctx context.Context, results []coverage.PairCoverage) error {
	return r.replace(ctx, "coverage_results", func(tx pgx.Tx) error {
		for _, res := range results {
			_, err := tx.Exec(ctx,
				`INSERT INTO coverage_results (id, id_2, all_days, full_clock, is_complete)
				 VALUES ($1, $2, $3, $4, $5)`,
				res.ID, res.ID2, res.AllDays, res.FullClock, res.Complete)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// replace truncates the table and runs insert inside one transaction.
func (r *PostgresRepository) replace(ctx context.Context, tableName string, insert func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM `+tableName); err != nil {
		return fmt.Errorf("clear %s: %w", tableName, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("insert into %s: %w", tableName, err)
	}
	return tx.Commit(ctx)
}

// Interface guards.
var (
	_ Repository    = (*PostgresRepository)(nil)
	_ Importer      = (*PostgresRepository)(nil)
	_ ArtifactStore = (*PostgresRepository)(nil)
)
