// Package classifier maps free transcript text to suggested tags and a
// source category using data-driven keyword rule tables. Everything here is
// pure and deterministic: no I/O, no randomness, no external state.
package classifier

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dws-labs/transcript-core/internal/models"
)

// SuggestTags scans content against the tag rule table and returns matched
// tags in rule order, deduplicated.
func SuggestTags(content string) []string {
	lowered := strings.ToLower(content)
	if strings.TrimSpace(lowered) == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, rule := range tagRules {
		if !strings.Contains(lowered, rule.keyword) {
			continue
		}
		if _, ok := seen[rule.tag]; ok {
			continue
		}
		seen[rule.tag] = struct{}{}
		out = append(out, rule.tag)
	}
	return out
}

// SuggestNewTags is SuggestTags filtered by the transcript's current tag set,
// for "new suggestion" display.
func SuggestNewTags(content string, existing []string) []string {
	current := make(map[string]struct{}, len(existing))
	for _, tag := range existing {
		current[strings.TrimSpace(tag)] = struct{}{}
	}

	var out []string
	for _, tag := range SuggestTags(content) {
		if _, ok := current[tag]; ok {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// DetectSourceCategory classifies a transcript by title first, then content.
// The first matching rule wins; SourceOther is the fixed fallback.
// Identical (title, content) always yields identical output.
func DetectSourceCategory(title, content string) models.Source {
	loweredTitle := strings.ToLower(title)
	for _, rule := range titleSourceRules {
		if strings.Contains(loweredTitle, rule.keyword) {
			return rule.source
		}
	}

	loweredContent := strings.ToLower(content)
	for _, rule := range contentSourceRules {
		if strings.Contains(loweredContent, rule.keyword) {
			return rule.source
		}
	}

	return models.SourceOther
}

// FormatTag turns an internal tag slug into a display label:
// "due_diligence" -> "Due Diligence". Purely syntactic.
func FormatTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	words := strings.FieldsFunc(tag, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + w[size:]
	}
	return strings.Join(words, " ")
}
