package lsh

import (
	"fmt"
	"testing"

	"github.com/justinbt1/Akin/pkg/signature"
)

const (
	benchPermutations = 64
	benchBands        = 16
	benchDocCount     = 200
)

func benchIndex(b *testing.B) (*Index[int], []signature.Signature) {
	b.Helper()

	mh, err := signature.NewMultiHash(signature.Config{Seed: 1, HasSeed: true, Permutations: benchPermutations})
	if err != nil {
		b.Fatal(err)
	}

	corpus := make([]string, benchDocCount)
	for i := range corpus {
		corpus[i] = fmt.Sprintf("the quick brown fox jumps over the lazy dog number %d repeatedly", i)
	}

	sigs, err := mh.Transform(corpus)
	if err != nil {
		b.Fatal(err)
	}

	idx, err := New[int](Config{Permutations: benchPermutations, Bands: benchBands})
	if err != nil {
		b.Fatal(err)
	}

	return idx, sigs
}

func BenchmarkIndex_Update(b *testing.B) {
	labels := make([]int, benchDocCount)
	for i := range labels {
		labels[i] = i
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		b.StopTimer()
		idx, sigs := benchIndex(b)
		b.StartTimer()

		if err := idx.Update(labels, sigs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIndex_Query(b *testing.B) {
	idx, sigs := benchIndex(b)

	labels := make([]int, benchDocCount)
	for i := range labels {
		labels[i] = i
	}

	if err := idx.Update(labels, sigs); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := idx.Query(i%benchDocCount, QueryOptions{Sensitivity: 1}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIndex_AdjacencyList(b *testing.B) {
	idx, sigs := benchIndex(b)

	labels := make([]int, benchDocCount)
	for i := range labels {
		labels[i] = i
	}

	if err := idx.Update(labels, sigs); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if _, err := idx.AdjacencyList(nil, QueryOptions{Sensitivity: 1}); err != nil {
			b.Fatal(err)
		}
	}
}
