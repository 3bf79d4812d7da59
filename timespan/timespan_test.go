package timespan_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alassgo/alass/timespan"
)

func TestNewSpan_Valid(t *testing.T) {
	require := require.New(t)

	s, err := timespan.NewSpan(1000, 2000, timespan.MaxTimestamp)
	require.NoError(err)
	require.Equal(timespan.Timestamp(1000), s.Start)
	require.Equal(timespan.Timestamp(2000), s.End)
	require.Equal(timespan.Duration(1000), s.Length())
}

func TestNewSpan_InvalidOrdering(t *testing.T) {
	require := require.New(t)

	_, err := timespan.NewSpan(2000, 1000, timespan.MaxTimestamp)
	require.ErrorIs(err, timespan.ErrInvalidSpan)

	_, err = timespan.NewSpan(1000, 1000, timespan.MaxTimestamp)
	require.ErrorIs(err, timespan.ErrInvalidSpan)
}

func TestNewSpan_Overflow(t *testing.T) {
	require := require.New(t)

	_, err := timespan.NewSpan(-5, 10, timespan.MaxTimestamp)
	require.True(errors.Is(err, timespan.ErrTimeOverflow))

	_, err = timespan.NewSpan(0, 10, 5)
	require.True(errors.Is(err, timespan.ErrTimeOverflow))
}

func TestOverlap(t *testing.T) {
	require := require.New(t)

	a, err := timespan.NewSpan(1000, 2000, timespan.MaxTimestamp)
	require.NoError(err)
	b, err := timespan.NewSpan(1500, 2500, timespan.MaxTimestamp)
	require.NoError(err)
	require.EqualValues(500, timespan.Overlap(a, b))

	c, err := timespan.NewSpan(2000, 3000, timespan.MaxTimestamp)
	require.NoError(err)
	require.EqualValues(0, timespan.Overlap(a, c), "touching spans do not overlap")

	d, err := timespan.NewSpan(5000, 6000, timespan.MaxTimestamp)
	require.NoError(err)
	require.EqualValues(0, timespan.Overlap(a, d))
}

func TestShift_SaturatesAtZero(t *testing.T) {
	require := require.New(t)

	s, err := timespan.NewSpan(500, 1000, timespan.MaxTimestamp)
	require.NoError(err)

	shifted := s.Shift(-800)
	require.EqualValues(0, shifted.Start)
	require.EqualValues(500, shifted.Length())
}

func TestSaturatingSub(t *testing.T) {
	require := require.New(t)

	require.EqualValues(0, timespan.SaturatingSub(5, 10))
	require.EqualValues(5, timespan.SaturatingSub(10, 5))
}
