package sender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{name: "fits", text: "hello", limit: 10, want: []string{"hello"}},
		{name: "empty", text: "", limit: 10, want: []string{""}},
		{name: "hard cut", text: "abcdefghij", limit: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "cuts at space", text: "hello world again", limit: 12, want: []string{"hello world ", "again"}},
		{name: "cuts at newline", text: "one\ntwothree", limit: 8, want: []string{"one\n", "twothree"}},
		{name: "counts runes", text: "☂☂☂☂☂", limit: 2, want: []string{"☂☂", "☂☂", "☂"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := chunk(tc.text, tc.limit)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.text, strings.Join(got, ""))
		})
	}
}
