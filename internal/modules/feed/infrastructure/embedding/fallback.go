package embedding

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// FallbackGenerator produces a randomized unit-length vector used as the query
// vector when a caller has no interest signal at all (cold start, anonymous
// visitors). The vector has no learned structure; it trades relevance for
// availability. Components are drawn from a normal distribution and
// normalized, which is uniform on the unit sphere.
type FallbackGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate returns a fresh unit-length vector of the requested dimension.
// It never fails; a non-positive dimension degrades to a single component.
func (g *FallbackGenerator) Generate(dim int) []float32 {
	if dim <= 0 {
		dim = 1
	}

	raw := make([]float64, dim)
	g.mu.Lock()
	for i := range raw {
		raw[i] = g.rng.NormFloat64()
	}
	g.mu.Unlock()

	var sum float64
	for _, v := range raw {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		raw[0] = 1
		norm = 1
	}

	vec := make([]float32, dim)
	for i, v := range raw {
		vec[i] = float32(v / norm)
	}
	return vec
}
