package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBenchmarksSumToOne(t *testing.T) {
	var sum float64
	for _, c := range Categories() {
		sum += Benchmark(c)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Len(t, Benchmarks(), len(Categories()))
}

func TestBenchmark_Unknown(t *testing.T) {
	assert.Equal(t, 0.30, Benchmark(CategoryFood))
	assert.Equal(t, DefaultBenchmark, Benchmark("Pets"))
}

func TestCategoriesReadOnly(t *testing.T) {
	cats := Categories()
	cats[0] = "Changed"
	assert.Equal(t, CategoryFood, Categories()[0])

	b := Benchmarks()
	b[CategoryFood] = 1
	assert.Equal(t, 0.30, Benchmark(CategoryFood))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Travel")
	assert.True(t, ok)
	assert.Equal(t, CategoryTravel, c)

	_, ok = ParseCategory("travel")
	assert.False(t, ok)
	_, ok = ParseCategory("")
	assert.False(t, ok)
}
