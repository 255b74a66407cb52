package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateEllipsis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "Wien",
			max:      10,
			expected: "Wien",
		},
		{
			name:     "exact length unchanged",
			input:    "Wien",
			max:      4,
			expected: "Wien",
		},
		{
			name:     "long string truncated with marker",
			input:    "Springfield, Sangamon County, Illinois",
			max:      20,
			expected: "Springfield, Sang...",
		},
		{
			name:     "max smaller than marker cuts the marker",
			input:    "Springfield",
			max:      2,
			expected: "..",
		},
		{
			name:     "multibyte runes counted as single units",
			input:    strings.Repeat("ö", 10),
			max:      5,
			expected: "öö...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateEllipsis(tt.input, tt.max, "...")

			assert.Equal(t, tt.expected, result)

			if utf8.RuneCountInString(tt.input) > tt.max {
				assert.Equal(t, tt.max, utf8.RuneCountInString(result),
					"truncated result is exactly max runes")
			}
		})
	}
}
