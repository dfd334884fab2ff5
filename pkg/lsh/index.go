// Package lsh implements a banded locality-sensitive-hashing index over
// MinHash signatures: it groups signatures into candidate buckets by
// fragment-hashing bands of the signature, and answers similarity queries by
// scanning the union of a query's band buckets and optionally filtering by
// an estimated Jaccard threshold.
package lsh

import (
	"sort"
	"sync"

	"github.com/justinbt1/Akin/internal/mapx"
	"github.com/justinbt1/Akin/pkg/hashutil"
	"github.com/justinbt1/Akin/pkg/signature"
)

// DefaultSeed is the band-hash seed used when Config.HasSeed is false.
const DefaultSeed int64 = 1

// DefaultSensitivity is the minimum number of matching bands a candidate
// must share with the query before being reported, when the caller does
// not specify one.
const DefaultSensitivity = 1

// Config configures an Index. Permutations must equal the length of every
// signature the index will ever store.
type Config struct {
	// Permutations is the expected length of every indexed signature.
	Permutations int

	// Bands is the number of bands each signature is split into before
	// hashing. Must be between 1 and Permutations. Zero means "absent": it
	// defaults to Permutations/2 (integer division).
	Bands int

	// Seed seeds the band bucket hash. Used only when HasSeed is true;
	// otherwise DefaultSeed (1) is used.
	Seed    int64
	HasSeed bool
}

func (c Config) withDefaults() Config {
	if c.Bands == 0 {
		c.Bands = c.Permutations / 2
	}

	if !c.HasSeed {
		c.Seed = DefaultSeed
		c.HasSeed = true
	}

	return c
}

func (c Config) validate() error {
	if c.Permutations < 1 {
		return ErrPermutationMismatch
	}

	if c.Bands < 1 || c.Bands > c.Permutations {
		return ErrInvalidBanding
	}

	return nil
}

// entry is the bookkeeping an Index keeps per resident label: its
// signature and the band keys it was inserted under, so Remove and Query
// can locate every bucket a label participates in without rehashing.
type entry struct {
	sig      signature.Signature
	bandKeys []string
}

// Index is a banded LSH similarity index over signatures of a fixed label
// type L. It is safe for concurrent use: reads (Query, AdjacencyList,
// AllSignatures) may run concurrently with each other, but never alongside
// a write (Update, Remove).
type Index[L comparable] struct {
	mu    sync.RWMutex
	cfg   Config
	store *BandBucketStore[L]
	byLbl map[L]entry
}

// New constructs an Index from cfg.
func New[L comparable](cfg Config) (*Index[L], error) {
	cfg = cfg.withDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	store, err := NewBandBucketStore[L](cfg.Bands)
	if err != nil {
		return nil, err
	}

	return &Index[L]{
		cfg:   cfg,
		store: store,
		byLbl: make(map[L]entry),
	}, nil
}

// bandBounds returns the half-open [start, end) range of signature entries
// that band i covers. Per the banding algorithm, band_size is
// ceil(permutations/bands); the final band is whatever remains, which is
// shorter than band_size whenever bands does not divide permutations
// evenly.
func (idx *Index[L]) bandBounds(band int) (int, int) {
	size := (idx.cfg.Permutations + idx.cfg.Bands - 1) / idx.cfg.Bands
	start := band * size
	end := start + size

	if end > idx.cfg.Permutations {
		end = idx.cfg.Permutations
	}

	return start, end
}

// bandKeys renders each band of sig into its bucket key: the 64-bit seeded
// hash of the canonical tuple text of that band's slice.
func (idx *Index[L]) bandKeys(sig signature.Signature) []string {
	keys := make([]string, idx.cfg.Bands)

	for b := 0; b < idx.cfg.Bands; b++ {
		start, end := idx.bandBounds(b)
		rendered := signature.Render(sig[start:end])
		keys[b] = hashutil.Hash64ToKey(rendered, idx.cfg.Seed)
	}

	return keys
}

// Update inserts a batch of (label, signature) pairs into the index. The
// batch is validated as a whole before any mutation is committed: if any
// label already exists, any label repeats within the batch, or any
// signature's length does not equal cfg.Permutations, the entire batch is
// rejected and the index is left unchanged.
func (idx *Index[L]) Update(labels []L, sigs []signature.Signature) error {
	if len(labels) != len(sigs) {
		return ErrPermutationMismatch
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	seen := make(map[L]struct{}, len(labels))

	for i, label := range labels {
		if sigs[i].Len() != idx.cfg.Permutations {
			return ErrPermutationMismatch
		}

		if _, ok := idx.byLbl[label]; ok {
			return ErrDuplicateLabel
		}

		if _, ok := seen[label]; ok {
			return ErrDuplicateLabel
		}

		seen[label] = struct{}{}
	}

	for i, label := range labels {
		keys := idx.bandKeys(sigs[i])

		for b, key := range keys {
			idx.store.Insert(b, key, label)
		}

		idx.byLbl[label] = entry{sig: sigs[i], bandKeys: keys}
	}

	return nil
}

// Remove evicts a batch of labels from the index. As with Update, the batch
// is validated before any mutation: if any label is unknown, or repeats
// within the batch, the entire batch is rejected and the index is left
// unchanged.
func (idx *Index[L]) Remove(labels []L) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	seen := make(map[L]struct{}, len(labels))

	for _, label := range labels {
		if _, ok := idx.byLbl[label]; !ok {
			return ErrMissingLabel
		}

		if _, ok := seen[label]; ok {
			return ErrMissingLabel
		}

		seen[label] = struct{}{}
	}

	for _, label := range labels {
		e := idx.byLbl[label]

		for b, key := range e.bandKeys {
			// label was necessarily inserted by Update, which never leaves
			// a partial trace, so a missing bucket here would indicate a
			// bug in the store rather than a real absence.
			_ = idx.store.Remove(b, key, label)
		}

		delete(idx.byLbl, label)
	}

	return nil
}

// Result is a single candidate returned by Query.
type Result[L comparable] struct {
	Label L
	// BandMatches is the number of bands in which the candidate shared a
	// bucket with the query.
	BandMatches int
	// Jaccard is the estimated Jaccard similarity between the query label's
	// signature and the candidate's, computed set-wise over signature
	// entries.
	Jaccard float64
}

// QueryOptions tunes a Query or AdjacencyList call.
type QueryOptions struct {
	// Sensitivity is the minimum number of band matches a candidate must
	// have to be reported. Must be between 1 and the index's Bands, and
	// defaults to DefaultSensitivity (1) when zero.
	Sensitivity int

	// MinJaccard, if non-zero, filters candidates to those whose estimated
	// Jaccard similarity is at least this value.
	MinJaccard float64
}

// Query returns every resident label, other than label itself, whose
// signature shares at least opts.Sensitivity bands with label's signature,
// optionally filtered by opts.MinJaccard. Fails with ErrMissingLabel if
// label is not resident, and ErrInvalidSensitivity if the requested
// sensitivity exceeds the index's band count. Result order is unspecified.
func (idx *Index[L]) Query(label L, opts QueryOptions) ([]Result[L], error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.queryLocked(label, opts)
}

func (idx *Index[L]) queryLocked(label L, opts QueryOptions) ([]Result[L], error) {
	e, ok := idx.byLbl[label]
	if !ok {
		return nil, ErrMissingLabel
	}

	sensitivity := opts.Sensitivity
	if sensitivity == 0 {
		sensitivity = DefaultSensitivity
	}

	if sensitivity < 1 || sensitivity > idx.cfg.Bands {
		return nil, ErrInvalidSensitivity
	}

	counts := make(map[L]int)

	for b, key := range e.bandKeys {
		for _, cand := range idx.store.Bucket(b, key) {
			if cand == label {
				continue
			}

			counts[cand]++
		}
	}

	results := make([]Result[L], 0, len(counts))

	for cand, matches := range counts {
		if matches < sensitivity {
			continue
		}

		j := estimateSetJaccard(e.sig, idx.byLbl[cand].sig)
		if opts.MinJaccard > 0 && j < opts.MinJaccard {
			continue
		}

		results = append(results, Result[L]{Label: cand, BandMatches: matches, Jaccard: j})
	}

	return results, nil
}

// estimateSetJaccard approximates the Jaccard similarity of two signatures
// by treating each as a set of its entries: |intersection| / |union|. This
// matches the candidate-filtering algorithm's set-based definition, as
// distinct from the positional agreement estimator signatures themselves
// are built to approximate.
func estimateSetJaccard(a, b signature.Signature) float64 {
	if a.Len() == 0 && b.Len() == 0 {
		return 0
	}

	setA := make(map[string]struct{}, a.Len())
	for _, v := range a {
		setA[v.String()] = struct{}{}
	}

	setB := make(map[string]struct{}, b.Len())
	for _, v := range b {
		setB[v.String()] = struct{}{}
	}

	union := make(map[string]struct{}, len(setA)+len(setB))
	for k := range setA {
		union[k] = struct{}{}
	}

	for k := range setB {
		union[k] = struct{}{}
	}

	intersection := 0

	for k := range setA {
		if _, ok := setB[k]; ok {
			intersection++
		}
	}

	if len(union) == 0 {
		return 0
	}

	return float64(intersection) / float64(len(union))
}

// AdjacencyList computes Query for every label in labels (or every resident
// label, if labels is nil) and collects the results into a map. It must not
// fail for any resident label; passing a label that is not resident returns
// ErrMissingLabel.
func (idx *Index[L]) AdjacencyList(labels []L, opts QueryOptions) (map[L][]L, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	targets := labels
	if targets == nil {
		targets = idx.labelsLocked()
	}

	out := make(map[L][]L, len(targets))

	for _, label := range targets {
		results, err := idx.queryLocked(label, opts)
		if err != nil {
			return nil, err
		}

		neighbours := make([]L, 0, len(results))
		for _, r := range results {
			neighbours = append(neighbours, r.Label)
		}

		out[label] = neighbours
	}

	return out, nil
}

func (idx *Index[L]) labelsLocked() []L {
	labels := make([]L, 0, len(idx.byLbl))
	for label := range idx.byLbl {
		labels = append(labels, label)
	}

	return mapx.Unique(labels)
}

// AllSignatures returns the set of every distinct signature currently
// indexed, keyed by its canonical rendering (Signature.Key). Two labels
// sharing an identical signature contribute a single entry, matching the
// spec's set semantics. The returned map is independent of the index's
// internal state; mutating it has no effect on the index.
func (idx *Index[L]) AllSignatures() map[string]signature.Signature {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string]signature.Signature, len(idx.byLbl))
	for _, e := range idx.byLbl {
		out[e.sig.Key()] = e.sig
	}

	return out
}

// SortBySimilarityDesc sorts results in place by descending Jaccard
// similarity, then by descending band-match count. Query itself makes no
// ordering guarantee (candidate order follows Go's map iteration, which is
// randomized per run); callers that want a deterministic, similarity-ranked
// ordering apply this explicitly.
func SortBySimilarityDesc[L comparable](results []Result[L]) {
	sort.Slice(results, func(i, k int) bool {
		if results[i].Jaccard != results[k].Jaccard {
			return results[i].Jaccard > results[k].Jaccard
		}

		return results[i].BandMatches > results[k].BandMatches
	})
}
