package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
		want    []string
	}{
		{
			name:    "overlapping windows",
			text:    "ABCDEFGHIJ",
			size:    4,
			overlap: 1,
			want:    []string{"ABCD", "DEFG", "GHIJ"},
		},
		{
			name:    "no overlap",
			text:    "ABCDEF",
			size:    2,
			overlap: 0,
			want:    []string{"AB", "CD", "EF"},
		},
		{
			name:    "short final chunk",
			text:    "ABCDE",
			size:    2,
			overlap: 0,
			want:    []string{"AB", "CD", "E"},
		},
		{
			name:    "text shorter than chunk size",
			text:    "AB",
			size:    10,
			overlap: 3,
			want:    []string{"AB"},
		},
		{
			name:    "single chunk exact size",
			text:    "ABCD",
			size:    4,
			overlap: 2,
			want:    []string{"ABCD"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text, tt.size, tt.overlap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equals size", 4, 4},
		{"overlap larger than size", 4, 10},
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split("some text", tt.size, tt.overlap)
			assert.ErrorIs(t, err, ErrInvalidChunking)
			assert.Nil(t, got)
		})
	}
}

func TestSplitEmptyText(t *testing.T) {
	got, err := Split("", 4, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSplitCoversTextWithOverlap(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog, again and again."
	size, overlap := 10, 3

	chunks, err := Split(text, size, overlap)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// Reassembling the chunks minus their overlapping prefixes yields the
	// original text.
	var sb strings.Builder
	sb.WriteString(chunks[0])
	for _, c := range chunks[1:] {
		runes := []rune(c)
		if len(runes) > overlap {
			sb.WriteString(string(runes[overlap:]))
		}
	}
	assert.Equal(t, text, sb.String())

	// Every chunk except the last has exactly the configured size, and each
	// consecutive pair shares the overlap region.
	for i, c := range chunks {
		if i < len(chunks)-1 {
			assert.Len(t, []rune(c), size)
		}
		if i > 0 {
			prev := []rune(chunks[i-1])
			expectedOverlap := string(prev[len(prev)-overlap:])
			assert.True(t, strings.HasPrefix(c, expectedOverlap),
				"chunk %d should start with the last %d runes of chunk %d", i, overlap, i-1)
		}
	}
}

func TestSplitUnicode(t *testing.T) {
	chunks, err := Split("áéíóúàâêô", 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"áéíó", "óúàâ", "âêô"}, chunks)
}
