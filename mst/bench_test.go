package mst_test

import (
	"testing"

	"github.com/katalvlaran/hclust/mst"
)

// BenchmarkPrim measures dense Prim on 500 random points.
func BenchmarkPrim(b *testing.B) {
	d := random(b, 500, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mst.Prim(d, 0)
	}
}

// BenchmarkKruskal measures Kruskal on the same input.
func BenchmarkKruskal(b *testing.B) {
	d := random(b, 500, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mst.Kruskal(d)
	}
}
