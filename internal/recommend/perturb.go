package recommend

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/lectoraapp/lectora/internal/domain"
)

// Perturber reorders a ranked list slightly so repeated runs differ.
// Implementations must not modify their input.
type Perturber interface {
	Perturb(books []domain.Book) []domain.Book
}

// NoPerturbation keeps the ranking as is.
type NoPerturbation struct{}

// Perturb returns books unchanged.
func (NoPerturbation) Perturb(books []domain.Book) []domain.Book {
	return books
}

// RandomPerturber swaps about a quarter of positions with a near neighbor.
// Books move at most MaxDistance places per swap, so the ranking's shape survives.
type RandomPerturber struct {
	Fraction    float64
	MaxDistance int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPerturber creates a perturber seeded from the runtime's entropy.
func NewRandomPerturber() *RandomPerturber {
	return NewSeededPerturber(rand.Uint64(), rand.Uint64())
}

// NewSeededPerturber creates a reproducible perturber.
func NewSeededPerturber(seed1, seed2 uint64) *RandomPerturber {
	return &RandomPerturber{
		Fraction:    0.25,
		MaxDistance: 2,
		rng:         rand.New(rand.NewPCG(seed1, seed2)),
	}
}

// Perturb returns a shuffled copy of books.
func (p *RandomPerturber) Perturb(books []domain.Book) []domain.Book {
	out := slices.Clone(books)
	n := len(out)
	if n < 2 || p.Fraction <= 0 || p.MaxDistance <= 0 {
		return out
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	swaps := max(1, int(float64(n)*p.Fraction))
	for range swaps {
		i := p.rng.IntN(n)
		j := min(i+1+p.rng.IntN(p.MaxDistance), n-1)
		if j == i {
			j = i - 1 - p.rng.IntN(min(p.MaxDistance, i))
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}
