package align

import "fmt"

// DeltaGroup is a maximal run of consecutive lines whose corrected start
// shifted by the same amount from the original track, the direct observable
// of a "split": a boundary between two groups is exactly a point where
// Align introduced (or removed) a split relative to the original spacing.
type DeltaGroup struct {
	Delta      int64 // corrected[i].Start - original[i].Start, constant within the group
	FirstIndex int   // inclusive
	LastIndex  int   // inclusive
}

// GroupByDelta groups original/corrected into maximal runs sharing the same
// per-line shift, letting a caller report "N segments found" the way
// original_source's get_subtitle_delta_groups does, without recomputing
// deltas itself.
func GroupByDelta(original, corrected Track) ([]DeltaGroup, error) {
	if len(original) != len(corrected) {
		return nil, fmt.Errorf("%w: original has %d lines, corrected has %d", ErrInternalInvariant, len(original), len(corrected))
	}
	if len(original) == 0 {
		return nil, ErrEmptyTrack
	}

	groups := make([]DeltaGroup, 0)
	delta := int64(corrected[0].Start) - int64(original[0].Start)
	groups = append(groups, DeltaGroup{Delta: delta, FirstIndex: 0, LastIndex: 0})

	for i := 1; i < len(original); i++ {
		d := int64(corrected[i].Start) - int64(original[i].Start)
		last := &groups[len(groups)-1]
		if d == last.Delta {
			last.LastIndex = i
			continue
		}
		groups = append(groups, DeltaGroup{Delta: d, FirstIndex: i, LastIndex: i})
	}

	return groups, nil
}
