package align_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alassgo/alass/align"
	"github.com/alassgo/alass/timespan"
)

const horizon = timespan.Timestamp(50000)

func mustSpan(t *testing.T, start, end timespan.Timestamp) timespan.Span {
	t.Helper()
	s, err := timespan.NewSpan(start, end, horizon)
	require.NoError(t, err)

	return s
}

func starts(track align.Track) []timespan.Timestamp {
	out := make([]timespan.Timestamp, len(track))
	for i, s := range track {
		out[i] = s.Start
	}

	return out
}

func TestAlign_PureOffset(t *testing.T) {
	require := require.New(t)

	reference := align.Track{
		mustSpan(t, 1000, 2000),
		mustSpan(t, 3000, 4000),
	}
	incorrect := align.Track{
		mustSpan(t, 1500, 2500),
		mustSpan(t, 3500, 4500),
	}

	corrected, err := align.Align(reference, incorrect, align.WithSplitPenalty(10))
	require.NoError(err)
	require.Equal([]timespan.Timestamp{1000, 3000}, starts(corrected))
	require.Equal(reference[0].Length(), corrected[0].Length())
	require.Equal(reference[1].Length(), corrected[1].Length())
}

func TestAlign_AdvertisementBreak(t *testing.T) {
	require := require.New(t)

	reference := align.Track{
		mustSpan(t, 1000, 2000),
		mustSpan(t, 3000, 4000),
		mustSpan(t, 5000, 6000),
	}
	incorrect := align.Track{
		mustSpan(t, 1000, 2000),
		mustSpan(t, 3000, 4000),
		mustSpan(t, 15000, 16000),
	}

	corrected, err := align.Align(reference, incorrect, align.WithSplitPenalty(10))
	require.NoError(err)
	require.Equal([]timespan.Timestamp{1000, 3000, 5000}, starts(corrected))
}

func TestAlign_Identity(t *testing.T) {
	require := require.New(t)

	track := align.Track{
		mustSpan(t, 0, 500),
		mustSpan(t, 1000, 1500),
	}

	corrected, err := align.Align(track, track, align.WithSplitPenalty(25))
	require.NoError(err)
	require.Equal(starts(track), starts(corrected))
}

// TestAlign_TieBreakPrefersKeep exercises the single-line case where every
// placement in the reference line's overlap window yields the same peak
// rating exactly once: the solver must land on the actual peak tick rather
// than the tick immediately before it.
func TestAlign_TieBreakPrefersKeep(t *testing.T) {
	require := require.New(t)

	reference := align.Track{mustSpan(t, 1000, 2000)}
	incorrect := align.Track{mustSpan(t, 1000, 2000)}

	corrected, err := align.Align(reference, incorrect, align.WithSplitPenalty(0))
	require.NoError(err)
	require.Equal([]timespan.Timestamp{1000}, starts(corrected))
}

func TestAlign_HighPenaltySuppressesSplit(t *testing.T) {
	require := require.New(t)

	reference := align.Track{
		mustSpan(t, 1000, 2000),
		mustSpan(t, 3000, 4000),
	}
	incorrect := align.Track{
		mustSpan(t, 1500, 2500),
		mustSpan(t, 4000, 5000),
	}

	corrected, err := align.Align(reference, incorrect, align.WithSplitPenalty(100))
	require.NoError(err)

	got := starts(corrected)
	shift0 := int64(incorrect[0].Start) - int64(got[0])
	shift1 := int64(incorrect[1].Start) - int64(got[1])
	require.Equal(shift0, shift1, "a high split penalty should force a single global offset")
}

func TestAlign_RejectsEmptyTrack(t *testing.T) {
	require := require.New(t)

	reference := align.Track{mustSpan(t, 0, 1000)}

	_, err := align.Align(reference, align.Track{})
	require.ErrorIs(err, align.ErrEmptyTrack)

	_, err = align.Align(align.Track{}, reference)
	require.ErrorIs(err, align.ErrEmptyTrack)
}

func TestAlign_RejectsNonMonotoneIncorrectTrack(t *testing.T) {
	require := require.New(t)

	reference := align.Track{mustSpan(t, 0, 1000), mustSpan(t, 2000, 3000)}
	incorrect := align.Track{mustSpan(t, 2000, 3000), mustSpan(t, 0, 1000)}

	_, err := align.Align(reference, incorrect)
	require.ErrorIs(err, align.ErrNonMonotone)
}

// TestAlign_ClampNegativeOption exercises WithClampNegative as a no-op on a
// well-formed alignment: the solver's position domain starts at zero by
// construction, so a negative corrected start can only arise from an
// internal bug, never from ordinary input. The option exists as the
// documented, deliberate belt-and-suspenders counterpart to that invariant.
func TestAlign_ClampNegativeOption(t *testing.T) {
	require := require.New(t)

	reference := align.Track{mustSpan(t, 0, 1000)}
	incorrect := align.Track{mustSpan(t, 5000, 6000)}

	corrected, err := align.Align(reference, incorrect, align.WithClampNegative())
	require.NoError(err)
	require.GreaterOrEqual(int64(corrected[0].Start), int64(0))
}

func TestAlign_ProgressReportsEveryPhase(t *testing.T) {
	require := require.New(t)

	reference := align.Track{mustSpan(t, 0, 500), mustSpan(t, 1000, 1500), mustSpan(t, 2000, 2500)}
	incorrect := align.Track{mustSpan(t, 100, 600), mustSpan(t, 1100, 1600), mustSpan(t, 2100, 2600)}

	var phases []int
	_, err := align.Align(reference, incorrect, align.WithProgress(func(phase, total int) {
		phases = append(phases, phase)
		require.Equal(len(incorrect), total)
	}))
	require.NoError(err)
	require.Equal([]int{1, 2, 3}, phases)
}

func TestAlign_InvalidOptionsReturnError(t *testing.T) {
	require := require.New(t)

	reference := align.Track{mustSpan(t, 0, 1000)}
	incorrect := align.Track{mustSpan(t, 0, 1000)}

	_, err := align.Align(reference, incorrect, align.WithSplitPenalty(-1))
	require.ErrorIs(err, align.ErrInvalidSplitPenalty)

	_, err = align.Align(reference, incorrect, align.WithTimeHorizon(-1))
	require.ErrorIs(err, align.ErrInvalidTimeHorizon)
}

func TestGroupByDelta_SplitsIntoRuns(t *testing.T) {
	require := require.New(t)

	original := align.Track{
		mustSpan(t, 1000, 2000),
		mustSpan(t, 3000, 4000),
		mustSpan(t, 15000, 16000),
	}
	corrected := align.Track{
		mustSpan(t, 1000, 2000),
		mustSpan(t, 3000, 4000),
		mustSpan(t, 5000, 6000),
	}

	groups, err := align.GroupByDelta(original, corrected)
	require.NoError(err)
	require.Len(groups, 2)
	require.Equal(align.DeltaGroup{Delta: 0, FirstIndex: 0, LastIndex: 1}, groups[0])
	require.Equal(align.DeltaGroup{Delta: -10000, FirstIndex: 2, LastIndex: 2}, groups[1])
}

func TestGroupByDelta_RejectsLengthMismatch(t *testing.T) {
	require := require.New(t)

	original := align.Track{mustSpan(t, 0, 1000)}
	corrected := align.Track{mustSpan(t, 0, 1000), mustSpan(t, 2000, 3000)}

	_, err := align.GroupByDelta(original, corrected)
	require.ErrorIs(err, align.ErrInternalInvariant)
}
