package blobstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeObjectKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"transcripts/abc.txt", "transcripts/abc.txt"},
		{"/transcripts/abc.txt", "transcripts/abc.txt"},
		{"transcripts\\2024\\abc.txt", "transcripts/2024/abc.txt"},
		{"transcripts//2024///abc.txt", "transcripts/2024/abc.txt"},
		{"  transcripts/abc.txt  ", "transcripts/abc.txt"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeObjectKey(tc.in), "input %q", tc.in)
	}
}

func TestEncodeObjectKeyEscapesSegments(t *testing.T) {
	assert.Equal(t, "transcripts/q3%20earnings.txt", encodeObjectKey("transcripts/q3 earnings.txt"))
	assert.Equal(t, "", encodeObjectKey("  "))
}
