package store

import (
	"strconv"
	"testing"
)

func BenchmarkOSTree_Insert(b *testing.B) {
	tr := NewOSTree()

	b.ReportAllocs()

	for i := 0; b.Loop(); i++ {
		tr.Insert(uint64(i), strconv.Itoa(i))
	}
}

func BenchmarkOSTree_Kth(b *testing.B) {
	const size = 100_000

	tr := NewOSTree()
	for i := range size {
		tr.Insert(uint64(i), strconv.Itoa(i))
	}

	b.ReportAllocs()

	for i := 0; b.Loop(); i++ {
		_, _ = tr.Kth(i % size)
	}
}

func BenchmarkOrderedMap_KeyAt(b *testing.B) {
	const size = 100_000

	m := NewOrderedMap[int]()
	for i := range size {
		m.Set(strconv.Itoa(i), i)
	}

	b.ReportAllocs()

	for i := 0; b.Loop(); i++ {
		_, _ = m.KeyAt(i % size)
	}
}
