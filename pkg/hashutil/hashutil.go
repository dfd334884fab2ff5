// Package hashutil provides the deterministic, seeded hash primitive used to
// build MinHash signatures and to derive LSH bucket ids, plus the splitmix64
// sequence used to seed the per-permutation hash functions.
//
// The underlying hash is the MurmurHash3 family (via murmur3), matched
// against its 32-bit, 64-bit, and 128-bit variants. The 64-bit form returns
// the first of the two 64-bit halves of the x64-128 variant; the 128-bit form
// packs both halves into a single unsigned value. All three widths are
// returned as *big.Int so a caller does not need to special-case width when
// comparing or storing hash outputs.
package hashutil

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/spaolacci/murmur3"
)

// Width is the bit width of a hash value produced by Hash.
type Width int

// Supported hash widths.
const (
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

// Splitmix64 constants (Vigna, 2014) shared by the mixing and seed-generation
// functions below.
const (
	mixShift1 = 30
	mixMul1   = 0xbf58476d1ce4e5b9
	mixShift2 = 27
	mixMul2   = 0x94d049bb133111eb
	mixShift3 = 31

	splitmix64Increment = 0x9e3779b97f4a7c15
)

// seedLowerBound and seedUpperBound bound the per-permutation seeds
// generated for multi-hash signatures: uniform in [1, 10^8).
const (
	seedLowerBound int64 = 1
	seedUpperBound int64 = 100_000_000
)

// ErrInvalidWidth is returned when width is not 32, 64, or 128.
var ErrInvalidWidth = errors.New("hashutil: width must be 32, 64, or 128")

// Hash computes the seeded MurmurHash3 of data at the requested width.
//
// Width32 and Width64 values are signed (two's complement), matching the
// reference mmh3 bindings this package is compatible with. Width128 values
// are unsigned: the two 64-bit halves returned by the x64-128 algorithm are
// packed high:low into one value, since Go has no native 128-bit integer
// type and signedness is not meaningful once both halves are combined.
func Hash(data []byte, seed int64, width Width) (*big.Int, error) {
	switch width {
	case Width32:
		h := murmur3.Sum32WithSeed(data, uint32(seed))

		return big.NewInt(int64(int32(h))), nil
	case Width64:
		return big.NewInt(Hash64(data, seed)), nil
	case Width128:
		h1, h2 := murmur3.Sum128WithSeed(data, uint32(seed))

		v := new(big.Int).Lsh(new(big.Int).SetUint64(h1), 64)
		v.Or(v, new(big.Int).SetUint64(h2))

		return v, nil
	default:
		return nil, ErrInvalidWidth
	}
}

// Hash64 computes the signed 64-bit seeded hash of data: the first of the two
// 64-bit halves returned by the MurmurHash3 x64-128 algorithm. This is the
// form used for LSH bucket ids, where a plain int64 is convenient.
func Hash64(data []byte, seed int64) int64 {
	h1, _ := murmur3.Sum128WithSeed(data, uint32(seed))

	return int64(h1)
}

// Hash64ToKey hashes s at the given seed and renders the result as a decimal
// string, for use as a compact bucket key of at most 20 characters regardless
// of the length of the text being hashed.
func Hash64ToKey(s string, seed int64) string {
	return strconv.FormatInt(Hash64([]byte(s), seed), 10)
}

// Mix64 applies the splitmix64 finalizer for full-avalanche mixing. This is a
// pure output function: it does not advance any state.
func Mix64(v uint64) uint64 {
	v ^= v >> mixShift1
	v *= mixMul1
	v ^= v >> mixShift2
	v *= mixMul2
	v ^= v >> mixShift3

	return v
}

// Splitmix64 advances state by the golden-ratio increment and applies the
// mix64 finalizer, producing the next value in the sequence.
func Splitmix64(state uint64) uint64 {
	state += splitmix64Increment
	z := state
	z = (z ^ (z >> mixShift1)) * mixMul1
	z = (z ^ (z >> mixShift2)) * mixMul2
	z ^= z >> mixShift3

	return z
}

// GenerateSeeds derives n deterministic seeds uniform in [1, 10^8) from
// masterSeed using the splitmix64 sequence. Given the same masterSeed, the
// returned seeds are bit-identical across runs and platforms.
func GenerateSeeds(n int, masterSeed int64) []int64 {
	seeds := make([]int64, n)

	state := uint64(masterSeed)
	span := uint64(seedUpperBound - seedLowerBound)

	for i := range seeds {
		state = Splitmix64(state)
		seeds[i] = int64(state%span) + seedLowerBound
	}

	return seeds
}

// DeriveSeed derives a single deterministic seed from masterSeed, for
// strategies that hash every shingle with one shared seed.
func DeriveSeed(masterSeed int64) int64 {
	return GenerateSeeds(1, masterSeed)[0]
}
