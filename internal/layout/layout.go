// Package layout resolves overlapping time intervals into side-by-side
// display columns for calendar day views.
package layout

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is a half-open [Start, End) time range to be placed. Touching
// intervals (a.End == b.Start) do not overlap.
type Interval struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Entry is a placed interval. Column is the zero-based display column,
// ColumnCount the number of columns in the interval's overlap cluster; the
// caller renders the interval at width 1/ColumnCount offset by Column.
type Entry struct {
	Interval
	Column      int
	ColumnCount int
}

func overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Assign places intervals into columns so that no two overlapping intervals
// share one. The algorithm is greedy and deterministic: intervals are taken
// in start order (input order breaks ties), each gets the smallest column not
// occupied by a still-active interval, and every cluster of transitively
// overlapping placed intervals reports the cluster's maximum column count.
// Entries are returned in placement order. Repeated calls with the same input
// produce identical output.
func Assign(intervals []Interval) ([]Entry, error) {
	for _, iv := range intervals {
		if !iv.End.After(iv.Start) {
			return nil, fmt.Errorf("interval %q [%s, %s): %w",
				iv.ID, iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339), ErrInvalidInterval)
		}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	placed := make([]*Entry, 0, len(sorted))
	active := make([]*Entry, 0)

	for _, iv := range sorted {
		// Evict intervals that ended before this one starts.
		kept := active[:0]
		for _, a := range active {
			if a.End.After(iv.Start) {
				kept = append(kept, a)
			}
		}
		active = kept

		used := make(map[int]struct{}, len(active))
		for _, a := range active {
			used[a.Column] = struct{}{}
		}
		col := 0
		for {
			if _, ok := used[col]; !ok {
				break
			}
			col++
		}

		entry := &Entry{Interval: iv, Column: col, ColumnCount: 1}
		active = append(active, entry)
		placed = append(placed, entry)

		// Raise the reported column count across the overlap cluster.
		cluster := make([]*Entry, 0, len(placed))
		maxCol := 0
		for _, p := range placed {
			if overlaps(p.Interval, iv) {
				cluster = append(cluster, p)
				if p.Column > maxCol {
					maxCol = p.Column
				}
			}
		}
		for _, p := range cluster {
			if maxCol+1 > p.ColumnCount {
				p.ColumnCount = maxCol + 1
			}
		}
	}

	out := make([]Entry, len(placed))
	for i, p := range placed {
		out[i] = *p
	}
	return out, nil
}
