// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Air Max 90", "air-max-90"},
		{"  Trail -- Runner  ", "trail-runner"},
		{"UPPERCASE", "uppercase"},
		{"hello, world!", "hello-world"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "Slugify(%q)", tt.title)
	}
}

func TestUniqueSlugSuffix(t *testing.T) {
	first, err := UniqueSlug("Air Max 90")
	require.NoError(t, err)
	second, err := UniqueSlug("Air Max 90")
	require.NoError(t, err)

	assert.Contains(t, first, "air-max-90-")
	assert.NotEqual(t, first, second)
}

func TestUniqueSlugEmptyBase(t *testing.T) {
	slug, err := UniqueSlug("!!!")
	require.NoError(t, err)
	assert.NotEmpty(t, slug)
	assert.NotContains(t, slug, "-")
}
