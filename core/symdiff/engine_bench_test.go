package symdiff

import (
	"fmt"
	"testing"
)

func benchInputs(n int) ([]Record, []Record) {
	a := make([]Record, 0, n)
	b := make([]Record, 0, n)
	for i := -1; i < n; i++ {
		a = append(a, Record{"a": i, "b": fmt.Sprint(i + 2)})
		b = append(b, Record{"a": i + n/4, "b": fmt.Sprint(i + n/4 + 2)})
	}
	return a, b
}

func BenchmarkCompute(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		left, right := benchInputs(n)
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Compute([]string{"a", "b"}, left, right); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkNaive(b *testing.B) {
	for _, n := range []int{100, 1000} {
		left, right := benchInputs(n)
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Naive([]string{"a", "b"}, left, right); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
