package avatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		base string
		in   string
		want string
	}{
		{"absolute https passes through", "https://cdn.example.org", "https://elsewhere.org/a.png", "https://elsewhere.org/a.png"},
		{"absolute http passes through", "https://cdn.example.org", "http://elsewhere.org/a.png", "http://elsewhere.org/a.png"},
		{"relative path joined", "https://cdn.example.org", "/uploads/a.png", "https://cdn.example.org/uploads/a.png"},
		{"relative without leading slash", "https://cdn.example.org", "uploads/a.png", "https://cdn.example.org/uploads/a.png"},
		{"trailing slash on base", "https://cdn.example.org/", "/uploads/a.png", "https://cdn.example.org/uploads/a.png"},
		{"empty value stays empty", "https://cdn.example.org", "", ""},
		{"no base leaves value alone", "", "/uploads/a.png", "/uploads/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewNormalizer(tt.base).Normalize(tt.in))
		})
	}
}
