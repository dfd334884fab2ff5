package lsh

import "errors"

// Sentinel errors for the band-bucket store and the LSH index. Every failure
// is raised synchronously; none are retried or silently recovered.
var (
	// ErrInvalidArity is returned when a BandBucketStore is constructed with
	// fewer than one band.
	ErrInvalidArity = errors.New("lsh: number of bands must be at least 1")

	// ErrMissingLabel is returned by BandBucketStore.Remove when the label is
	// not present in the target bucket, and by Index.Remove/Query/
	// AdjacencyList when a label is not resident in the index.
	ErrMissingLabel = errors.New("lsh: label not found")

	// ErrInvalidBanding is returned when no_of_bands is less than 1 or
	// greater than permutations.
	ErrInvalidBanding = errors.New("lsh: no_of_bands must be between 1 and permutations")

	// ErrInvalidSensitivity is returned when a query's sensitivity exceeds
	// no_of_bands.
	ErrInvalidSensitivity = errors.New("lsh: sensitivity must be <= no_of_bands")

	// ErrPermutationMismatch is returned when a signature's length does not
	// equal the index's permutations (also used when a batch's signature and
	// label counts differ, a shape mismatch of the same kind).
	ErrPermutationMismatch = errors.New("lsh: signature length must equal permutations")

	// ErrDuplicateLabel is returned by Update when a label already exists in
	// the index, or appears more than once within the same batch.
	ErrDuplicateLabel = errors.New("lsh: label already exists in index")
)
