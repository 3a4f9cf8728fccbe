package processing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmptyInput(t *testing.T) {
	assert.Nil(t, Chunk("", ChunkOptions{}))
	assert.Nil(t, Chunk("  \n\n  \t", ChunkOptions{}))
}

func TestChunkSmallTextIsSingleChunk(t *testing.T) {
	text := "Alpha paragraph.\n\nBeta paragraph."
	chunks := Chunk(text, ChunkOptions{})
	require.Len(t, chunks, 1)
	assert.Equal(t, "Alpha paragraph.\n\nBeta paragraph.", chunks[0])
}

func TestChunkGroupsParagraphsWithOverlap(t *testing.T) {
	paragraphs := []string{"one.", "two.", "three.", "four.", "five."}
	text := strings.Join(paragraphs, "\n\n")

	chunks := Chunk(text, ChunkOptions{ParagraphsPerChunk: 2, Overlap: 1})

	require.Len(t, chunks, 4)
	assert.Equal(t, "one.\n\ntwo.", chunks[0])
	assert.Equal(t, "two.\n\nthree.", chunks[1])
	assert.Equal(t, "three.\n\nfour.", chunks[2])
	assert.Equal(t, "four.\n\nfive.", chunks[3])
}

func TestChunkRespectsMaxChars(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("The committee discussed valuation assumptions at length. ")
	}
	text := b.String()

	chunks := Chunk(text, ChunkOptions{MaxChars: 200})
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
	}
}

func TestChunkSkipsBlankParagraphs(t *testing.T) {
	text := "first.\n\n   \n\nsecond."
	chunks := Chunk(text, ChunkOptions{ParagraphsPerChunk: 1, Overlap: 0})
	require.Len(t, chunks, 2)
	assert.Equal(t, "first.", chunks[0])
	assert.Equal(t, "second.", chunks[1])
}

func TestSplitSentencesKeepsAbbreviationsTogether(t *testing.T) {
	sentences := splitSentences("Mr. Smith met Dr. Jones. They agreed on terms.")
	require.Len(t, sentences, 2)
	assert.Equal(t, "Mr. Smith met Dr. Jones.", sentences[0])
	assert.Equal(t, "They agreed on terms.", sentences[1])
}

func TestSplitByMaxLengthFallsBackToWords(t *testing.T) {
	// One long sentence with no internal boundaries.
	long := strings.Repeat("word ", 100)
	chunks := splitByMaxLength(strings.TrimSpace(long), 50)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 50)
	}
	// Nothing was dropped.
	assert.Equal(t, 100, len(strings.Fields(strings.Join(chunks, " "))))
}
