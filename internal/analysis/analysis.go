// Package analysis provides descriptive analytics over the per-pair
// vehicle count dataset: the car count matrix, categorical car-type
// counts, bus outlier lookup, high-truck route filtering, and
// conditional matrix scaling.
package analysis

import (
	"math"
	"sort"

	"github.com/tollgrid/tollgrid/internal/table"
)

// Column names of the vehicle count dataset.
const (
	ColID1   = "id_1"
	ColID2   = "id_2"
	ColRoute = "route"
)

// CountRecord is one raw vehicle count observation between two
// location identifiers.
type CountRecord struct {
	ID1   string  `json:"id_1"`
	ID2   string  `json:"id_2"`
	Route string  `json:"route"`
	Moto  float64 `json:"moto"`
	Car   float64 `json:"car"`
	RV    float64 `json:"rv"`
	Bus   float64 `json:"bus"`
	Truck float64 `json:"truck"`
}

// CarType buckets a car count value.
type CarType string

const (
	CarTypeLow    CarType = "low"    // car <= 15
	CarTypeMedium CarType = "medium" // 15 < car <= 25
	CarTypeHigh   CarType = "high"   // car > 25
)

// carType classifies a single car value.
func carType(car float64) CarType {
	switch {
	case car <= 15:
		return CarTypeLow
	case car <= 25:
		return CarTypeMedium
	default:
		return CarTypeHigh
	}
}

// countFrame converts records to the tabular boundary shape.
func countFrame(records []CountRecord) (*table.Frame, error) {
	id1 := make([]string, len(records))
	id2 := make([]string, len(records))
	cars := make([]float64, len(records))
	for i, rec := range records {
		id1[i] = rec.ID1
		id2[i] = rec.ID2
		cars[i] = rec.Car
	}
	return table.NewFrame(
		table.StringColumn(ColID1, id1),
		table.StringColumn(ColID2, id2),
		table.FloatColumn("car", cars),
	)
}

// CarMatrix pivots the car counts into an id_1 by id_2 matrix with the
// diagonal forced to 0.
func CarMatrix(records []CountRecord) (*table.Matrix, error) {
	frame, err := countFrame(records)
	if err != nil {
		return nil, err
	}
	m, err := frame.Pivot(ColID1, ColID2, "car")
	if err != nil {
		return nil, err
	}
	m.FillDiagonal(0)
	return m, nil
}

// CarTypeCount is the number of records falling in one car bucket.
type CarTypeCount struct {
	Type  CarType `json:"car_type"`
	Count int     `json:"count"`
}

// CarTypeCounts buckets every record's car value and returns the
// bucket counts sorted by bucket name. Buckets with no records are
// omitted.
func CarTypeCounts(records []CountRecord) []CarTypeCount {
	counts := make(map[CarType]int)
	for _, rec := range records {
		counts[carType(rec.Car)]++
	}

	out := make([]CarTypeCount, 0, len(counts))
	for typ, n := range counts {
		out = append(out, CarTypeCount{Type: typ, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// BusOutlierIndexes returns the ascending row indexes whose bus count
// exceeds twice the dataset mean. An empty dataset has no outliers.
func BusOutlierIndexes(records []CountRecord) []int {
	if len(records) == 0 {
		return nil
	}
	var sum float64
	for _, rec := range records {
		sum += rec.Bus
	}
	mean := sum / float64(len(records))

	var indexes []int
	for i, rec := range records {
		if rec.Bus > 2*mean {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// highTruckMean is the mean truck count a route must exceed to be
// reported.
const highTruckMean = 7

// HighTruckRoutes returns the sorted route names whose mean truck
// count exceeds 7.
func HighTruckRoutes(records []CountRecord) []string {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range records {
		sums[rec.Route] += rec.Truck
		counts[rec.Route]++
	}

	var routes []string
	for route, sum := range sums {
		if sum/float64(counts[route]) > highTruckMean {
			routes = append(routes, route)
		}
	}
	sort.Strings(routes)
	return routes
}

// ScaleMatrix rescales every cell with the conditional multiplier
// (×0.75 above 20, ×1.25 otherwise) and rounds to one decimal.
func ScaleMatrix(m *table.Matrix) *table.Matrix {
	return m.Map(func(v float64) float64 {
		if v > 20 {
			v *= 0.75
		} else {
			v *= 1.25
		}
		return math.Round(v*10) / 10
	})
}
