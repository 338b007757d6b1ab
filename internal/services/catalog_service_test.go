// internal/services/catalog_service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elite1357/store-backend/internal/models"
)

func makeProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i].Title = fmt.Sprintf("Product %d", i)
		products[i].Slug = fmt.Sprintf("product-%d", i)
	}
	return products
}

func TestSampleProductsDistinct(t *testing.T) {
	candidates := makeProducts(10)

	for run := 0; run < 50; run++ {
		sampled := sampleProducts(candidates, 4)
		assert.Len(t, sampled, 4)

		seen := map[string]bool{}
		for _, p := range sampled {
			assert.False(t, seen[p.Slug], "product %s sampled twice", p.Slug)
			seen[p.Slug] = true
		}
	}
}

func TestSampleProductsFewerCandidatesThanRequested(t *testing.T) {
	candidates := makeProducts(2)

	sampled := sampleProducts(candidates, 4)
	assert.Len(t, sampled, 2)

	seen := map[string]bool{}
	for _, p := range sampled {
		seen[p.Slug] = true
	}
	assert.Len(t, seen, 2)
}

func TestSampleProductsEmptyAndZero(t *testing.T) {
	assert.Empty(t, sampleProducts(nil, 4))
	assert.Empty(t, sampleProducts(makeProducts(5), 0))
	assert.Empty(t, sampleProducts(makeProducts(5), -1))
}

func TestSampleProductsDoesNotMutateInput(t *testing.T) {
	candidates := makeProducts(6)
	original := make([]models.Product, len(candidates))
	copy(original, candidates)

	sampleProducts(candidates, 3)

	for i := range candidates {
		assert.Equal(t, original[i].Slug, candidates[i].Slug)
	}
}
