package lsh

import "github.com/justinbt1/Akin/internal/mapx"

// BandBucketStore holds, for each band, a map from a bucket key (the Index
// uses the decimal 64-bit hash of the canonical rendering of that band's
// signature slice) to the set of labels that hash into it.
// It is the storage primitive the LSH index bands its signatures into; on
// its own it knows nothing about signatures, permutations, or similarity,
// only about which labels collide in which band bucket.
//
// A BandBucketStore is not safe for concurrent use; callers that need
// concurrent access must synchronize externally (the Index does this).
type BandBucketStore[L comparable] struct {
	bands []map[string]map[L]struct{}
}

// NewBandBucketStore creates a store with the given number of bands. Bands
// must be at least 1.
func NewBandBucketStore[L comparable](bands int) (*BandBucketStore[L], error) {
	if bands < 1 {
		return nil, ErrInvalidArity
	}

	b := make([]map[string]map[L]struct{}, bands)
	for i := range b {
		b[i] = make(map[string]map[L]struct{})
	}

	return &BandBucketStore[L]{bands: b}, nil
}

// Bands reports the number of bands the store was constructed with.
func (s *BandBucketStore[L]) Bands() int {
	return len(s.bands)
}

// Insert adds label to the bucket keyed by key within the given band. The
// band index must be within [0, Bands()).
func (s *BandBucketStore[L]) Insert(band int, key string, label L) {
	bucket, ok := s.bands[band][key]
	if !ok {
		bucket = make(map[L]struct{})
		s.bands[band][key] = bucket
	}

	bucket[label] = struct{}{}
}

// Remove deletes label from the bucket keyed by key within the given band.
// It returns ErrMissingLabel if the label is not present in that bucket. An
// emptied bucket is pruned from the band map.
func (s *BandBucketStore[L]) Remove(band int, key string, label L) error {
	bucket, ok := s.bands[band][key]
	if !ok {
		return ErrMissingLabel
	}

	if _, ok := bucket[label]; !ok {
		return ErrMissingLabel
	}

	delete(bucket, label)

	if len(bucket) == 0 {
		delete(s.bands[band], key)
	}

	return nil
}

// Bucket returns the labels sharing the given band's bucket, excluding
// nothing. The returned slice is a fresh copy safe for the caller to retain.
func (s *BandBucketStore[L]) Bucket(band int, key string) []L {
	bucket, ok := s.bands[band][key]
	if !ok {
		return nil
	}

	out := make([]L, 0, len(bucket))
	for label := range bucket {
		out = append(out, label)
	}

	return out
}

// AllLabels returns the set of every label present anywhere in the store,
// de-duplicated across bands (a resident label appears in every band it was
// inserted into, so a naive concatenation would repeat it Bands() times).
func (s *BandBucketStore[L]) AllLabels() []L {
	var all []L

	for _, band := range s.bands {
		for _, bucket := range band {
			for label := range bucket {
				all = append(all, label)
			}
		}
	}

	return mapx.Unique(all)
}
