package table

import (
	"strconv"
	"strings"
)

// Group is one group produced by GroupBy: the key values of the group
// columns and the row indexes belonging to it.
type Group struct {
	// Key holds the group's value for each key column, in the order
	// the key columns were given.
	Key []string

	// Rows are the frame row indexes in this group, in input order.
	Rows []int
}

// GroupBy partitions the frame rows by the given key columns. Groups
// are returned in first-seen order, so the result is deterministic for
// a given input ordering; the membership of each group is independent
// of ordering entirely.
func (f *Frame) GroupBy(keys ...string) ([]Group, error) {
	cols := make([]*Column, len(keys))
	for i, k := range keys {
		col, err := f.Column(k)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	var groups []Group
	index := make(map[string]int)
	for row := 0; row < f.rows; row++ {
		var sb strings.Builder
		key := make([]string, len(cols))
		for i, col := range cols {
			key[i] = col.cell(row)
			sb.WriteString(key[i])
			sb.WriteByte(0x1f) // unit separator, avoids key collisions
		}
		composite := sb.String()
		at, ok := index[composite]
		if !ok {
			at = len(groups)
			index[composite] = at
			groups = append(groups, Group{Key: key})
		}
		groups[at].Rows = append(groups[at].Rows, row)
	}
	return groups, nil
}

// GroupMean is the mean of a value column within one group.
type GroupMean struct {
	Key  []string
	Mean float64
}

// MeanBy groups the frame by the key columns and computes the mean of
// the named float column per group. Averaging is commutative, so the
// result does not depend on row order within a group.
func (f *Frame) MeanBy(value string, keys ...string) ([]GroupMean, error) {
	values, err := f.FloatColumn(value)
	if err != nil {
		return nil, err
	}
	groups, err := f.GroupBy(keys...)
	if err != nil {
		return nil, err
	}

	means := make([]GroupMean, 0, len(groups))
	for _, g := range groups {
		var sum float64
		for _, row := range g.Rows {
			sum += values[row]
		}
		means = append(means, GroupMean{
			Key:  g.Key,
			Mean: sum / float64(len(g.Rows)),
		})
	}
	return means, nil
}

// LessIdentifier orders two identifiers, numerically when both parse
// as integers and lexicographically otherwise. Matches how sorted
// label sets are presented throughout the service.
func LessIdentifier(a, b string) bool {
	na, erra := strconv.ParseInt(a, 10, 64)
	nb, errb := strconv.ParseInt(b, 10, 64)
	if erra == nil && errb == nil {
		return na < nb
	}
	return a < b
}
