package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lectoraapp/lectora/internal/domain"
)

func TestNoPerturbation(t *testing.T) {
	books := manyBooks("b", 5)
	assert.Equal(t, books, NoPerturbation{}.Perturb(books))
}

func TestRandomPerturber_Reproducible(t *testing.T) {
	books := manyBooks("b", 20)

	a := NewSeededPerturber(1, 2).Perturb(books)
	b := NewSeededPerturber(1, 2).Perturb(books)

	assert.Equal(t, ids(a), ids(b))
	assert.NotEqual(t, ids(books), ids(a))
}

func TestRandomPerturber_IsPermutation(t *testing.T) {
	books := manyBooks("b", 20)
	before := ids(books)

	out := NewSeededPerturber(7, 7).Perturb(books)

	assert.ElementsMatch(t, before, ids(out))
	assert.Equal(t, before, ids(books), "input is not modified")
}

func TestRandomPerturber_SmallInputs(t *testing.T) {
	p := NewRandomPerturber()

	assert.NotPanics(t, func() {
		for range 500 {
			p.Perturb(nil)
			p.Perturb(manyBooks("b", 1))
			assert.Len(t, p.Perturb(manyBooks("b", 2)), 2)
			assert.Len(t, p.Perturb(manyBooks("b", 3)), 3)
		}
	})
}

func TestRandomPerturber_Disabled(t *testing.T) {
	p := NewSeededPerturber(1, 1)
	p.Fraction = 0

	books := []domain.Book{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assert.Equal(t, books, p.Perturb(books))
}
