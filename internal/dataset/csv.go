package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tollgrid/tollgrid/internal/analysis"
	"github.com/tollgrid/tollgrid/internal/coverage"
	"github.com/tollgrid/tollgrid/internal/distance"
	"github.com/tollgrid/tollgrid/internal/table"
)

// header maps column names to their positions in a CSV header row.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(row))
	for i, name := range row {
		h[name] = i
	}
	return h, nil
}

// require returns the positions of the named columns, failing with the
// schema error when any is absent.
func (h header) require(names ...string) ([]int, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		pos, ok := h[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", table.ErrColumnNotFound, name)
		}
		positions[i] = pos
	}
	return positions, nil
}

func parseFloat(field, column string, line int) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", line, column, err)
	}
	return v, nil
}

// ReadSegments decodes long-form segment distance records from CSV
// with columns id_start, id_end, distance.
func ReadSegments(r io.Reader) ([]distance.PairRecord, error) {
	cr := csv.NewReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	pos, err := h.require(distance.ColIDStart, distance.ColIDEnd, distance.ColDistance)
	if err != nil {
		return nil, err
	}

	var records []distance.PairRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		d, err := parseFloat(row[pos[2]], distance.ColDistance, line)
		if err != nil {
			return nil, err
		}
		records = append(records, distance.PairRecord{
			IDStart:  row[pos[0]],
			IDEnd:    row[pos[1]],
			Distance: d,
		})
	}
	return records, nil
}

// ReadVehicleCounts decodes vehicle count records from CSV with
// columns id_1, id_2, route, moto, car, rv, bus, truck.
func ReadVehicleCounts(r io.Reader) ([]analysis.CountRecord, error) {
	cr := csv.NewReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	pos, err := h.require(analysis.ColID1, analysis.ColID2, analysis.ColRoute,
		"moto", "car", "rv", "bus", "truck")
	if err != nil {
		return nil, err
	}

	var records []analysis.CountRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := analysis.CountRecord{
			ID1:   row[pos[0]],
			ID2:   row[pos[1]],
			Route: row[pos[2]],
		}
		vehicles := []struct {
			name string
			dst  *float64
			at   int
		}{
			{"moto", &rec.Moto, pos[3]},
			{"car", &rec.Car, pos[4]},
			{"rv", &rec.RV, pos[5]},
			{"bus", &rec.Bus, pos[6]},
			{"truck", &rec.Truck, pos[7]},
		}
		for _, v := range vehicles {
			*v.dst, err = parseFloat(row[v.at], v.name, line)
			if err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadObservations decodes timestamped review observations from CSV
// with columns id, id_2, timestamp. Unparseable timestamps fail the
// whole read.
func ReadObservations(r io.Reader) ([]coverage.Observation, error) {
	cr := csv.NewReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	pos, err := h.require("id", "id_2", "timestamp")
	if err != nil {
		return nil, err
	}

	var records []coverage.Observation
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		obs, err := coverage.ParseObservation(row[pos[0]], row[pos[1]], row[pos[2]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, obs)
	}
	return records, nil
}
