package signature

import (
	"math/big"
	"slices"

	"github.com/justinbt1/Akin/pkg/hashutil"
	"github.com/justinbt1/Akin/pkg/shingle"
)

// BottomK builds signatures using a single seeded hash function per
// document, keeping the permutations smallest hash values in ascending
// order. It hashes every shingle once (faster than MultiHash) but is less
// stable when document sizes differ substantially.
type BottomK struct {
	nGram        int
	nGramType    shingle.Mode
	permutations int
	hashBits     hashutil.Width
	seed         int64
}

// NewBottomK creates a BottomK builder from cfg, applying defaults for
// zero-valued fields. The single shared hash seed is derived once,
// deterministically, from the (possibly generated) master seed.
func NewBottomK(cfg Config) (*BottomK, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &BottomK{
		nGram:        cfg.NGram,
		nGramType:    cfg.NGramType,
		permutations: cfg.Permutations,
		hashBits:     cfg.HashBits,
		seed:         hashutil.DeriveSeed(cfg.masterSeed()),
	}, nil
}

// Transform builds one signature per document in corpus, in input order.
func (b *BottomK) Transform(corpus []string) ([]Signature, error) {
	return transformParallel(corpus, b.TransformOne)
}

// TransformOne builds the signature of a single document. It fails with
// ErrInsufficientShingles if the document does not produce more shingles
// than permutations.
func (b *BottomK) TransformOne(text string) (Signature, error) {
	shingles, err := shingle.Collect(text, b.nGram, b.nGramType)
	if err != nil {
		return nil, err
	}

	if len(shingles) <= b.permutations {
		return nil, ErrInsufficientShingles
	}

	hashes := make([]*big.Int, len(shingles))

	for i, sh := range shingles {
		h, err := hashutil.Hash([]byte(sh), b.seed, b.hashBits)
		if err != nil {
			return nil, err
		}

		hashes[i] = h
	}

	slices.SortFunc(hashes, func(a, c *big.Int) int { return a.Cmp(c) })

	return Signature(hashes[:b.permutations]), nil
}
