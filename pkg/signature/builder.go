package signature

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/justinbt1/Akin/pkg/hashutil"
	"github.com/justinbt1/Akin/pkg/shingle"
)

// Default configuration values, applied by Config.withDefaults.
const (
	DefaultNGram        = 9
	DefaultPermutations = 100
)

// DefaultHashBits is the default hash width.
const DefaultHashBits = hashutil.Width64

// Sentinel errors for signature construction. ErrInvalidShingleSize is
// re-exported from shingle so callers of this package never need to import
// it directly.
var (
	// ErrInvalidNGramType is returned for an n_gram_type outside {char, term}.
	ErrInvalidNGramType = shingle.ErrInvalidNGramType

	// ErrInvalidHashBits is returned for a hash_bits outside {32, 64, 128}.
	ErrInvalidHashBits = errors.New("signature: hash_bits must be 32, 64, or 128")

	// ErrInvalidShingleSize is returned when a document is shorter than n_gram.
	ErrInvalidShingleSize = shingle.ErrInvalidShingleSize

	// ErrInsufficientShingles is returned by BottomK when a document does not
	// produce more shingles than the requested number of permutations.
	ErrInsufficientShingles = errors.New("signature: shingle count must exceed permutations")
)

// Config configures a Builder. Zero-valued fields take the defaults listed
// below, matching the external configuration surface of the specification.
type Config struct {
	// NGram is the shingle window size. Zero defaults to DefaultNGram.
	NGram int

	// NGramType selects character or term shingling. The zero value is
	// shingle.Char, which is also the default.
	NGramType shingle.Mode

	// Permutations is the signature length. Zero defaults to
	// DefaultPermutations.
	Permutations int

	// HashBits is the hash primitive width. Zero defaults to DefaultHashBits.
	HashBits hashutil.Width

	// Seed is the master seed used to derive per-permutation hash seeds.
	// Ignored unless HasSeed is true; when HasSeed is false a
	// non-deterministic master seed is generated at construction.
	Seed int64

	// HasSeed reports whether Seed was explicitly provided.
	HasSeed bool
}

func (c Config) withDefaults() Config {
	if c.NGram == 0 {
		c.NGram = DefaultNGram
	}

	if c.Permutations == 0 {
		c.Permutations = DefaultPermutations
	}

	if c.HashBits == 0 {
		c.HashBits = DefaultHashBits
	}

	return c
}

func (c Config) validate() error {
	if c.NGramType != shingle.Char && c.NGramType != shingle.Term {
		return ErrInvalidNGramType
	}

	switch c.HashBits {
	case hashutil.Width32, hashutil.Width64, hashutil.Width128:
	default:
		return ErrInvalidHashBits
	}

	return nil
}

func (c Config) masterSeed() int64 {
	if c.HasSeed {
		return c.Seed
	}

	return randomMasterSeed()
}

// randomMasterSeed produces a non-deterministic master seed, used when a
// Builder is constructed with an absent seed.
func randomMasterSeed() int64 {
	var buf [8]byte

	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failure is exceptionally rare; fall back to a fixed
		// value rather than leaving the builder seedless.
		return 1
	}

	v := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	if v == 0 {
		v = 1
	}

	return v
}

// Builder transforms a corpus of documents into MinHash signatures. The two
// implementations, MultiHash and BottomK, share this contract so callers and
// downstream consumers (an lsh.Index) are strategy-agnostic.
type Builder interface {
	// Transform builds one signature per document in corpus, in input order.
	Transform(corpus []string) ([]Signature, error)

	// TransformOne builds the signature of a single document, the one-element
	// corpus case.
	TransformOne(text string) (Signature, error)
}

// transformParallel runs transformOne over each document in corpus
// concurrently, bounded by GOMAXPROCS, and returns results in input order.
// Per-document work is pure, so this satisfies the determinism and ordering
// requirements for parallel signature construction.
func transformParallel(corpus []string, transformOne func(string) (Signature, error)) ([]Signature, error) {
	results := make([]Signature, len(corpus))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, text := range corpus {
		g.Go(func() error {
			sig, err := transformOne(text)
			if err != nil {
				return fmt.Errorf("signature: document %d: %w", i, err)
			}

			results[i] = sig

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
