package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWellFormedLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want bool
	}{
		{"apartment page", "https://prinzip.su/apartments/42", true},
		{"house page", "https://prinzip.su/houses/vesna/7781", true},
		{"with query", "https://prinzip.su/apartments/42?utm=1", true},
		{"escaped path", "https://prinzip.su/apartments/%D0%B0", true},
		{"other host", "https://example.com/apartments/42", false},
		{"http scheme", "http://prinzip.su/apartments/42", false},
		{"prefix without slash", "https://prinzip.su", false},
		{"lookalike host", "https://prinzip.su.evil.com/apartments/42", false},
		{"space in path", "https://prinzip.su/apartments/4 2", false},
		{"bad escape", "https://prinzip.su/apartments/%zz", false},
		{"angle bracket", "https://prinzip.su/<script>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormedLink(tt.link, DefaultTrustedPrefix))
		})
	}
}

func TestIsWellFormedLinkCustomPrefix(t *testing.T) {
	assert.True(t, IsWellFormedLink("http://127.0.0.1:8080/apartments/1", "http://127.0.0.1:8080/"))
	assert.False(t, IsWellFormedLink("https://prinzip.su/apartments/1", "http://127.0.0.1:8080/"))
	// пустой префикс означает префикс по умолчанию
	assert.True(t, IsWellFormedLink("https://prinzip.su/apartments/1", ""))
}
