package distance

import (
	"sort"

	"github.com/tollgrid/tollgrid/internal/table"
)

// thresholdFraction is the half-width of the selection band as a
// fraction of the reference average.
const thresholdFraction = 0.1

// AverageDistance is one identifier's mean distance across all of its
// outgoing records.
type AverageDistance struct {
	ID   string  `json:"id_start"`
	Mean float64 `json:"avg_distance"`
}

// IDsWithinThreshold selects every id_start whose average distance
// falls within ±10% of the reference identifier's own average, bounds
// inclusive. The reference therefore always selects itself. Results
// are sorted ascending by identifier. A reference with no records is
// ErrReferenceNotFound: its average is undefined, not zero.
func IDsWithinThreshold(records []PairRecord, referenceID string) ([]AverageDistance, error) {
	frame, err := Frame(records)
	if err != nil {
		return nil, err
	}
	means, err := frame.MeanBy(ColDistance, ColIDStart)
	if err != nil {
		return nil, err
	}

	var referenceMean float64
	found := false
	for _, gm := range means {
		if gm.Key[0] == referenceID {
			referenceMean = gm.Mean
			found = true
			break
		}
	}
	if !found {
		return nil, ErrReferenceNotFound
	}

	threshold := thresholdFraction * referenceMean
	lo, hi := referenceMean-threshold, referenceMean+threshold

	var selected []AverageDistance
	for _, gm := range means {
		if gm.Mean >= lo && gm.Mean <= hi {
			selected = append(selected, AverageDistance{ID: gm.Key[0], Mean: gm.Mean})
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		return table.LessIdentifier(selected[i].ID, selected[j].ID)
	})
	return selected, nil
}
