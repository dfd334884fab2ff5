package lsh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBandBucketStore_InvalidArity(t *testing.T) {
	t.Parallel()

	_, err := NewBandBucketStore[string](0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArity)
}

func TestBandBucketStore_InsertAndBucket(t *testing.T) {
	t.Parallel()

	s, err := NewBandBucketStore[string](3)
	require.NoError(t, err)

	s.Insert(0, "k1", "doc-a")
	s.Insert(0, "k1", "doc-b")
	s.Insert(1, "k2", "doc-a")

	assert.ElementsMatch(t, []string{"doc-a", "doc-b"}, s.Bucket(0, "k1"))
	assert.ElementsMatch(t, []string{"doc-a"}, s.Bucket(1, "k2"))
	assert.Nil(t, s.Bucket(2, "absent"))
}

func TestBandBucketStore_BandsAreIndependent(t *testing.T) {
	t.Parallel()

	s, err := NewBandBucketStore[string](2)
	require.NoError(t, err)

	s.Insert(0, "same-key", "doc-a")
	s.Insert(1, "same-key", "doc-b")

	assert.ElementsMatch(t, []string{"doc-a"}, s.Bucket(0, "same-key"))
	assert.ElementsMatch(t, []string{"doc-b"}, s.Bucket(1, "same-key"))
}

func TestBandBucketStore_RemovePrunesEmptyBucket(t *testing.T) {
	t.Parallel()

	s, err := NewBandBucketStore[string](1)
	require.NoError(t, err)

	s.Insert(0, "k", "doc-a")
	require.NoError(t, s.Remove(0, "k", "doc-a"))

	assert.Nil(t, s.Bucket(0, "k"))
}

func TestBandBucketStore_RemoveUnknownLabelFails(t *testing.T) {
	t.Parallel()

	s, err := NewBandBucketStore[string](1)
	require.NoError(t, err)

	s.Insert(0, "k", "doc-a")

	err = s.Remove(0, "k", "doc-b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingLabel)

	err = s.Remove(0, "unknown-key", "doc-a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingLabel)
}

func TestBandBucketStore_AllLabelsDeduplicatesAcrossBands(t *testing.T) {
	t.Parallel()

	s, err := NewBandBucketStore[string](3)
	require.NoError(t, err)

	for b := 0; b < 3; b++ {
		s.Insert(b, "k", "doc-a")
	}

	s.Insert(0, "other", "doc-b")

	assert.ElementsMatch(t, []string{"doc-a", "doc-b"}, s.AllLabels())
}
