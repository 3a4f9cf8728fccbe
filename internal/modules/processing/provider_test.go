package processing

import (
	"testing"

	appcfg "github.com/dws-labs/transcript-core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLanguageCode(t *testing.T) {
	cases := map[string]string{
		"":           "en",
		"  ":         "en",
		"DE":         "de",
		"en-US":      "en",
		"zh-Hans-CN": "zh",
		"fr, en":     "fr",
		"pt-BR":      "pt",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeLanguageCode(in), "input %q", in)
	}
}

func TestResolveSummaryTargetLanguageName(t *testing.T) {
	assert.Equal(t, "German", resolveSummaryTargetLanguageName("de-AT"))
	assert.Equal(t, "English", resolveSummaryTargetLanguageName("auto"))
	assert.Equal(t, "English", resolveSummaryTargetLanguageName("tlh"))
}

func TestExtractSummaryFromAIResponse(t *testing.T) {
	got, err := extractSummaryFromAIResponse(`{"summary":"Deal approved at 12x EBITDA."}`)
	require.NoError(t, err)
	assert.Equal(t, "Deal approved at 12x EBITDA.", got)

	got, err = extractSummaryFromAIResponse("```json\n{\"summary\":\"Fenced.\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Fenced.", got)

	got, err = extractSummaryFromAIResponse(`Sure, here you go: {"summary":"Embedded."} hope that helps`)
	require.NoError(t, err)
	assert.Equal(t, "Embedded.", got)

	_, err = extractSummaryFromAIResponse(`{"summary":"  "}`)
	assert.Error(t, err)

	_, err = extractSummaryFromAIResponse("not json")
	assert.Error(t, err)
}

func TestNormalizeOpenAIBaseURL(t *testing.T) {
	assert.Equal(t, "", normalizeOpenAIBaseURL(""))
	assert.Equal(t, "https://api.example.com/v1", normalizeOpenAIBaseURL("https://api.example.com"))
	assert.Equal(t, "https://api.example.com/v1", normalizeOpenAIBaseURL("https://api.example.com/v1/"))
	assert.Equal(t, "https://api.example.com/proxy/v1", normalizeOpenAIBaseURL("https://api.example.com/proxy"))
}

func TestNormalizeOpenAICompatibleEndpoint(t *testing.T) {
	assert.Equal(t, "https://api.openai.com", normalizeOpenAICompatibleEndpoint(""))
	assert.Equal(t, "https://llm.internal", normalizeOpenAICompatibleEndpoint("https://llm.internal/v1/"))
	assert.Equal(t, "https://llm.internal/proxy", normalizeOpenAICompatibleEndpoint("https://llm.internal/proxy/v1"))
}

func TestNormalizeProviderType(t *testing.T) {
	assert.True(t, isOpenAICompatibleProviderType("OpenAI-Compatible"))
	assert.True(t, isOpenAICompatibleProviderType("openai_compatible"))
	assert.False(t, isOpenAICompatibleProviderType("OpenAI"))
	assert.False(t, isOpenAICompatibleProviderType("Anthropic"))
}

func TestSelectProvider(t *testing.T) {
	cfg := appcfg.AIConfig{
		Providers: []appcfg.AIProvider{
			{ID: "disabled", Type: "OpenAI", Enabled: false},
			{ID: "primary", Type: "Anthropic", DefaultModel: "claude-haiku-4-5-20251001", Enabled: true},
			{ID: "backup", Type: "OpenAI", DefaultModel: "gpt-4o-mini", Enabled: true},
		},
	}

	p := selectProvider(cfg)
	require.NotNil(t, p)
	assert.Equal(t, "primary", p.ID)

	cfg.SummaryProviderID = "backup"
	p = selectProvider(cfg)
	require.NotNil(t, p)
	assert.Equal(t, "backup", p.ID)

	cfg.SummaryModel = "gpt-4.1-mini"
	p = selectProvider(cfg)
	require.NotNil(t, p)
	assert.Equal(t, "gpt-4.1-mini", p.DefaultModel)

	// An unknown id falls back to the first enabled provider.
	cfg.SummaryProviderID = "ghost"
	p = selectProvider(cfg)
	require.NotNil(t, p)
	assert.Equal(t, "primary", p.ID)

	assert.Nil(t, selectProvider(appcfg.AIConfig{}))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "abc...", truncateText("abcdef", 3))
}
