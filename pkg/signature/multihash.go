package signature

import (
	"math/big"

	"github.com/justinbt1/Akin/pkg/hashutil"
	"github.com/justinbt1/Akin/pkg/shingle"
)

// MultiHash builds signatures using permutations independent seeded hash
// functions per document, retaining the minimum hash value seen for each.
// It is slower than BottomK (O(permutations * shingles) hashes per document)
// but more stable across documents of very different lengths.
type MultiHash struct {
	nGram        int
	nGramType    shingle.Mode
	permutations int
	hashBits     hashutil.Width
	hashSeeds    []int64
}

// NewMultiHash creates a MultiHash builder from cfg, applying defaults for
// zero-valued fields. The permutations independent hash seeds are derived
// once, deterministically, from the (possibly generated) master seed.
func NewMultiHash(cfg Config) (*MultiHash, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &MultiHash{
		nGram:        cfg.NGram,
		nGramType:    cfg.NGramType,
		permutations: cfg.Permutations,
		hashBits:     cfg.HashBits,
		hashSeeds:    hashutil.GenerateSeeds(cfg.Permutations, cfg.masterSeed()),
	}, nil
}

// Transform builds one signature per document in corpus, in input order.
func (m *MultiHash) Transform(corpus []string) ([]Signature, error) {
	return transformParallel(corpus, m.TransformOne)
}

// TransformOne builds the signature of a single document.
func (m *MultiHash) TransformOne(text string) (Signature, error) {
	shingles, err := shingle.Collect(text, m.nGram, m.nGramType)
	if err != nil {
		return nil, err
	}

	mins := make([]*big.Int, m.permutations)

	for _, sh := range shingles {
		data := []byte(sh)

		for i, seed := range m.hashSeeds {
			h, err := hashutil.Hash(data, seed, m.hashBits)
			if err != nil {
				return nil, err
			}

			if mins[i] == nil || h.Cmp(mins[i]) < 0 {
				mins[i] = h
			}
		}
	}

	return Signature(mins), nil
}
