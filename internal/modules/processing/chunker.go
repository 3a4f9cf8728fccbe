// Package processing runs the transcript processing worker: chunking,
// summarization via the configured AI provider, and task bookkeeping.
package processing

import (
	"regexp"
	"strings"
)

// ChunkOptions tunes the splitter. Zero values fall back to defaults.
type ChunkOptions struct {
	// ParagraphsPerChunk is how many paragraphs are grouped per chunk.
	ParagraphsPerChunk int
	// Overlap is how many paragraphs consecutive chunks share.
	Overlap int
	// MaxChars bounds a single chunk; oversized chunks are re-split on
	// sentence boundaries, then on words.
	MaxChars int
}

const (
	defaultParagraphsPerChunk = 5
	defaultOverlap            = 1
	defaultMaxChars           = 2000
)

var (
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
	sentenceSplitRe  = regexp.MustCompile(`(?:[.!?])\s+`)
)

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.ParagraphsPerChunk <= 0 {
		o.ParagraphsPerChunk = defaultParagraphsPerChunk
	}
	if o.Overlap < 0 || o.Overlap >= o.ParagraphsPerChunk {
		o.Overlap = defaultOverlap
	}
	if o.MaxChars <= 0 {
		o.MaxChars = defaultMaxChars
	}
	return o
}

// Chunk splits transcript text paragraph-first: paragraphs are grouped with
// overlap, and any group exceeding MaxChars is re-split along sentence and
// finally word boundaries. Empty input yields no chunks.
func Chunk(text string, opts ChunkOptions) []string {
	opts = opts.withDefaults()

	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	step := opts.ParagraphsPerChunk - opts.Overlap
	for i := 0; i < len(paragraphs); i += step {
		end := i + opts.ParagraphsPerChunk
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		chunk := strings.Join(paragraphs[i:end], "\n\n")
		if len(chunk) > opts.MaxChars {
			chunks = append(chunks, splitByMaxLength(chunk, opts.MaxChars)...)
		} else {
			chunks = append(chunks, chunk)
		}
		if end == len(paragraphs) {
			break
		}
	}
	return chunks
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// abbreviations left intact when splitting sentences.
var sentenceAbbrevs = []string{"Mr.", "Mrs.", "Ms.", "Dr.", "Jr.", "Sr.", "St.", "vs.", "etc.", "e.g.", "i.e.", "Inc.", "Ltd.", "Co.", "Corp."}

const abbrevDot = "\x00"

// splitSentences splits text on sentence boundaries while keeping common
// abbreviations together.
func splitSentences(text string) []string {
	protected := text
	for _, abbr := range sentenceAbbrevs {
		protected = strings.ReplaceAll(protected,
			abbr, strings.ReplaceAll(abbr, ".", abbrevDot))
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceSplitRe.FindAllStringIndex(protected, -1) {
		// keep the terminating punctuation with the sentence
		sentences = append(sentences, protected[last:loc[0]+1])
		last = loc[1]
	}
	sentences = append(sentences, protected[last:])

	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(strings.ReplaceAll(s, abbrevDot, "."))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitByMaxLength re-splits an oversized chunk on sentence boundaries,
// falling back to word boundaries for sentences that are themselves too long.
func splitByMaxLength(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	current := ""
	flush := func() {
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
	}
	appendUnit := func(unit string) {
		switch {
		case current == "":
			current = unit
		case len(current)+len(unit)+1 <= maxLen:
			current += " " + unit
		default:
			flush()
			current = unit
		}
	}

	for _, sentence := range splitSentences(text) {
		if len(sentence) <= maxLen {
			appendUnit(sentence)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			appendUnit(word)
		}
	}
	flush()
	return chunks
}
