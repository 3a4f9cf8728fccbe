package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"app.example.com", "*.corp.example.com", "localhost:*"}

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://app.example.com", true},
		{"https://APP.Example.COM", true},
		{"https://evil-app.example.com", false},
		{"https://corp.example.com", true},
		{"https://team.corp.example.com", true},
		{"https://notcorp.example.com", false},
		{"http://localhost", true},
		{"http://localhost:5173", true},
		{"http://localhost.evil.com", false},
		{"app.example.com", true},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, originAllowed(patterns, tc.origin), "origin %q", tc.origin)
	}

	assert.False(t, originAllowed(nil, "https://app.example.com"))
	assert.False(t, originAllowed([]string{"  "}, "https://app.example.com"))
}

func TestOriginHost(t *testing.T) {
	assert.Equal(t, "app.example.com:8443", originHost("https://app.example.com:8443"))
	assert.Equal(t, "app.example.com", originHost(" https://app.example.com/path "))
	assert.Equal(t, "app.example.com", originHost("app.example.com"))
}
