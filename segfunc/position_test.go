package segfunc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alassgo/alass/segfunc"
)

func TestPositionBuffer_ConstantThenIdentity(t *testing.T) {
	require := require.New(t)

	p, err := segfunc.NewPositionBuffer(0, 20)
	require.NoError(err)

	require.NoError(p.AppendConstant(10, 5, segfunc.ChoiceKeep))
	require.NoError(p.AppendIdentity(11, -3, segfunc.ChoiceNoSplit))
	require.NoError(p.Validate())

	v, err := p.Lookup(0)
	require.NoError(err)
	require.EqualValues(5, v)

	v, err = p.Lookup(9)
	require.NoError(err)
	require.EqualValues(5, v)

	v, err = p.Lookup(10)
	require.NoError(err)
	require.EqualValues(7, v) // t + offset = 10 + (-3)

	v, err = p.Lookup(20)
	require.NoError(err)
	require.EqualValues(17, v)
}

func TestPositionBuffer_MergesAdjacentIdentity(t *testing.T) {
	require := require.New(t)

	p, err := segfunc.NewPositionBuffer(0, 9)
	require.NoError(err)
	require.NoError(p.AppendIdentity(5, 0, segfunc.ChoiceReposition))
	require.NoError(p.AppendIdentity(5, 0, segfunc.ChoiceReposition))

	require.Len(p.Segments(), 1, "two contiguous identity runs with the same offset must merge")
}

func TestPositionBuffer_RejectsOverrun(t *testing.T) {
	require := require.New(t)

	p, err := segfunc.NewPositionBuffer(0, 5)
	require.NoError(err)
	err = p.AppendConstant(10, 0, segfunc.ChoiceKeep)
	require.ErrorIs(err, segfunc.ErrInternalInvariant)
}

func TestPositionBuffer_ValidateDetectsGap(t *testing.T) {
	require := require.New(t)

	p, err := segfunc.NewPositionBuffer(0, 9)
	require.NoError(err)
	require.NoError(p.AppendConstant(5, 0, segfunc.ChoiceKeep))
	// Buffer only covers [0,5): incomplete. Validate must reject it.
	err = p.Validate()
	require.ErrorIs(err, segfunc.ErrInternalInvariant)
}
