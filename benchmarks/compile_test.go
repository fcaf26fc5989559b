package benchmarks

import (
	"testing"
)

// BenchmarkCompile_Linear_5 compiles a 5-node board.
func BenchmarkCompile_Linear_5(b *testing.B) {
	reg := benchRegistry()
	board := buildLinearBoard(5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = board.Compile(reg)
	}
}

// BenchmarkCompile_Linear_100 compiles a 100-node board.
func BenchmarkCompile_Linear_100(b *testing.B) {
	reg := benchRegistry()
	board := buildLinearBoard(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = board.Compile(reg)
	}
}

// BenchmarkEncode_YAML serializes a 50-node board.
func BenchmarkEncode_YAML(b *testing.B) {
	board := buildLinearBoard(50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = board.Encode()
	}
}
