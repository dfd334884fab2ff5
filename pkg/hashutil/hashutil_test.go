package hashutil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Deterministic(t *testing.T) {
	t.Parallel()

	for _, width := range []Width{Width32, Width64, Width128} {
		a, err := Hash([]byte("jupiter"), 3, width)
		require.NoError(t, err)

		b, err := Hash([]byte("jupiter"), 3, width)
		require.NoError(t, err)

		assert.Zero(t, a.Cmp(b), "width %d must be deterministic", width)
	}
}

func TestHash_DiffersBySeed(t *testing.T) {
	t.Parallel()

	a, err := Hash([]byte("helium"), 1, Width64)
	require.NoError(t, err)

	b, err := Hash([]byte("helium"), 2, Width64)
	require.NoError(t, err)

	assert.NotZero(t, a.Cmp(b))
}

func TestHash_InvalidWidth(t *testing.T) {
	t.Parallel()

	h, err := Hash([]byte("x"), 1, Width(17))
	require.Error(t, err)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestHash_Width128IsUnsigned128Bit(t *testing.T) {
	t.Parallel()

	h, err := Hash([]byte("a quarter of its mass"), 3, Width128)
	require.NoError(t, err)

	assert.True(t, h.Sign() >= 0, "width128 values are packed as unsigned")

	max128 := new(big.Int).Lsh(big.NewInt(1), 128)
	assert.Equal(t, -1, h.Cmp(max128))
}

func TestHash64MatchesWidth64(t *testing.T) {
	t.Parallel()

	direct := Hash64([]byte("red spot"), 9)

	viaHash, err := Hash([]byte("red spot"), 9, Width64)
	require.NoError(t, err)

	assert.Equal(t, direct, viaHash.Int64())
}

func TestGenerateSeeds_Deterministic(t *testing.T) {
	t.Parallel()

	a := GenerateSeeds(20, 3)
	b := GenerateSeeds(20, 3)

	assert.Equal(t, a, b)
	assert.Len(t, a, 20)

	for _, seed := range a {
		assert.GreaterOrEqual(t, seed, int64(1))
		assert.Less(t, seed, int64(100_000_000))
	}
}

func TestGenerateSeeds_DiffersByMasterSeed(t *testing.T) {
	t.Parallel()

	a := GenerateSeeds(5, 1)
	b := GenerateSeeds(5, 2)

	assert.NotEqual(t, a, b)
}

func TestDeriveSeed_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DeriveSeed(7), DeriveSeed(7))
	assert.Equal(t, GenerateSeeds(1, 7)[0], DeriveSeed(7))
}

func TestSplitmix64_Sequence(t *testing.T) {
	t.Parallel()

	state := uint64(42)
	first := Splitmix64(state)
	second := Splitmix64(first)

	assert.NotEqual(t, first, second)
	assert.Equal(t, first, Splitmix64(state))
}

func TestMix64_PureFunction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Mix64(123), Mix64(123))
	assert.NotEqual(t, Mix64(123), Mix64(124))
}
