package classifier

import (
	"testing"

	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSuggestTagsMatchesKeywordsInRuleOrder(t *testing.T) {
	content := "The acquisition closed after due diligence. EBITDA margin improved and the merger added synergies."

	tags := SuggestTags(content)

	assert.Equal(t, []string{"m_and_a", "due_diligence", "synergies", "financials"}, tags)
}

func TestSuggestTagsDeduplicates(t *testing.T) {
	// "merger", "acquisition" and "takeover" all map to m_and_a.
	tags := SuggestTags("merger acquisition takeover")
	assert.Equal(t, []string{"m_and_a"}, tags)
}

func TestSuggestTagsEmptyContent(t *testing.T) {
	assert.Nil(t, SuggestTags(""))
	assert.Nil(t, SuggestTags("   \n\t"))
}

func TestSuggestNewTagsFiltersExisting(t *testing.T) {
	content := "valuation via dcf, antitrust review pending"

	tags := SuggestNewTags(content, []string{"valuation"})
	assert.Equal(t, []string{"regulatory"}, tags)
}

func TestDetectSourceCategoryTitleWinsOverContent(t *testing.T) {
	// Title says board meeting, content looks like an earnings call.
	source := DetectSourceCategory(
		"Board Meeting March 2026",
		"Operator instructions: please hold for the quarter ended results.",
	)
	assert.Equal(t, models.SourceBoardMeeting, source)
}

func TestDetectSourceCategoryFallsBackToContent(t *testing.T) {
	source := DetectSourceCategory(
		"Project Falcon session",
		"We reviewed the data room index together.",
	)
	assert.Equal(t, models.SourceDueDiligence, source)
}

func TestDetectSourceCategoryDefaultsToOther(t *testing.T) {
	assert.Equal(t, models.SourceOther, DetectSourceCategory("Untitled", "nothing matching here"))
	assert.Equal(t, models.SourceOther, DetectSourceCategory("", ""))
}

func TestDetectSourceCategoryDeterministic(t *testing.T) {
	title, content := "Q3 Earnings Call", "Operator instructions follow."
	first := DetectSourceCategory(title, content)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DetectSourceCategory(title, content))
	}
}

func TestFormatTag(t *testing.T) {
	assert.Equal(t, "Due Diligence", FormatTag("due_diligence"))
	assert.Equal(t, "M And A", FormatTag("m_and_a"))
	assert.Equal(t, "Capital Markets", FormatTag("capital-markets"))
	assert.Equal(t, "", FormatTag("  "))
	// Leading runes outside ASCII must be uppercased whole, not byte-sliced.
	assert.Equal(t, "Übernahme Due Diligence", FormatTag("übernahme_due_diligence"))
	assert.Equal(t, "État Financier", FormatTag("état_financier"))
}
