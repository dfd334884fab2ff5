// Package akin detects near-duplicate text by combining MinHash signature
// construction with banded locality-sensitive-hashing similarity search.
//
// It re-exports the three pieces a caller typically needs together —
// shingling modes, a SignatureBuilder (MultiHash or BottomK), and an
// Index — so most programs only need to import this package rather than
// reaching into pkg/shingle, pkg/signature, and pkg/lsh directly.
package akin

import (
	"github.com/justinbt1/Akin/pkg/lsh"
	"github.com/justinbt1/Akin/pkg/shingle"
	"github.com/justinbt1/Akin/pkg/signature"
)

// Shingling modes.
const (
	Char = shingle.Char
	Term = shingle.Term
)

// SignatureBuilder builds MinHash signatures for a corpus of documents. Both
// MultiHash and BottomK satisfy it.
type SignatureBuilder = signature.Builder

// Signature is a MinHash signature: one minimum hash value per permutation.
type Signature = signature.Signature

// Config configures a SignatureBuilder.
type Config = signature.Config

// NewMultiHash constructs a SignatureBuilder using the multi-hash strategy:
// one independently seeded hash function per permutation, each minimized
// over every shingle of the document.
func NewMultiHash(cfg Config) (*signature.MultiHash, error) {
	return signature.NewMultiHash(cfg)
}

// NewBottomK constructs a SignatureBuilder using the bottom-k strategy: a
// single hash function applied to every shingle, keeping the k smallest
// results.
func NewBottomK(cfg Config) (*signature.BottomK, error) {
	return signature.NewBottomK(cfg)
}

// IndexConfig configures an Index.
type IndexConfig = lsh.Config

// QueryOptions tunes an Index.Query or Index.AdjacencyList call.
type QueryOptions = lsh.QueryOptions

// Result is a single candidate returned by Index.Query.
type Result[L comparable] = lsh.Result[L]

// Index is a banded LSH similarity index over signatures of a fixed label
// type L.
type Index[L comparable] = lsh.Index[L]

// NewIndex constructs an Index from cfg.
func NewIndex[L comparable](cfg IndexConfig) (*Index[L], error) {
	return lsh.New[L](cfg)
}
