package seo_test

import (
	"strings"
	"testing"

	"github.com/alkime/studio/internal/seo"
	"github.com/alkime/studio/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// optimizedText is 300 words with three headings, two links and the keyword
// "content" six times (2% density), spread over three short paragraphs.
func optimizedText() string {
	return strings.Join([]string{
		"## Alpha",
		"content " + filler(94) + " [guide](https://a.example) content",
		"## Beta",
		"content " + filler(96) + " content",
		"## Gamma",
		"content " + filler(96) + " [docs](https://b.example) content",
	}, "\n\n")
}

func TestAnalyze_Optimized(t *testing.T) {
	text := optimizedText()

	r, err := seo.Analyze(text, "content")
	require.NoError(t, err)

	assert.Equal(t, 300, r.WordCount)
	assert.Equal(t, 6, r.KeywordCount)
	assert.InDelta(t, 2.0, r.KeywordDensity, 1e-9)
	assert.Equal(t, 3, r.Headings)
	assert.Equal(t, 2, r.Links)
	assert.True(t, r.KeywordInIntro)
	assert.Equal(t, seo.ReadabilityGood, r.Readability)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, []string{seo.WellOptimized}, r.Recommendations)
}

func TestAnalyze_ScoreAlwaysInRange(t *testing.T) {
	inputs := []struct{ text, keyword string }{
		{"x", ""},
		{"x", "x"},
		{optimizedText(), "content"},
		{strings.Repeat("seo ", 2500), "seo"},
		{"# a\n# b\n# c\n[l](u) [m](v)", "zzz"},
		{strings.Repeat("incomprehensibilities ", 50), ""},
	}

	for _, in := range inputs {
		r, err := seo.Analyze(in.text, in.keyword)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, 100)
		assert.NotEmpty(t, r.Recommendations)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		_, err := seo.Analyze(text, "seo")
		assert.True(t, validation.Is(err), "expected validation error for %q", text)
	}
}

func TestAnalyze_Advisories(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keyword  string
		contains string
	}{
		{name: "too short", text: filler(50), keyword: "word", contains: "too short"},
		{name: "too long", text: filler(2001), keyword: "", contains: "very long"},
		{name: "sparse keyword", text: filler(300) + " seo", keyword: "seo", contains: "too low"},
		{name: "dense keyword", text: strings.Repeat("seo word ", 150), keyword: "seo", contains: "too high"},
		{name: "no keyword", text: filler(10), keyword: "", contains: "focus keyword"},
		{name: "few headings", text: "# One\n\n" + filler(10), keyword: "", contains: "more headings"},
		{name: "long paragraphs", text: filler(400), keyword: "", contains: "Paragraphs are too long"},
		{name: "few links", text: "[one](https://a.example) " + filler(5), keyword: "", contains: "more links"},
		{name: "complex words", text: strings.Repeat("characterization ", 10), keyword: "", contains: "Simplify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := seo.Analyze(tt.text, tt.keyword)
			require.NoError(t, err)

			joined := strings.Join(r.Recommendations, "\n")
			assert.Contains(t, joined, tt.contains)
			assert.NotContains(t, r.Recommendations, seo.WellOptimized)
		})
	}
}

func TestAnalyze_KeywordIsCaseInsensitiveWholeWord(t *testing.T) {
	r, err := seo.Analyze("SEO basics. seo tips. Seoul is a city.", "seo")
	require.NoError(t, err)

	assert.Equal(t, 2, r.KeywordCount)
}

func TestAnalyze_KeywordWithSymbolsAndAccents(t *testing.T) {
	tests := []struct {
		keyword string
	}{
		{keyword: "café"},
		{keyword: "C++"},
		{keyword: "C#"},
		{keyword: "marketing"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			text := strings.Repeat(tt.keyword+" is great for teams today. ", 10)

			r, err := seo.Analyze(text, tt.keyword)
			require.NoError(t, err)

			assert.Equal(t, 10, r.KeywordCount)
			assert.Greater(t, r.KeywordDensity, 0.0)
			assert.True(t, r.KeywordInIntro)
		})
	}
}

func TestAnalyze_KeywordInsideLongerWordIgnored(t *testing.T) {
	r, err := seo.Analyze("Cafés open early. The café opens late. Cafébar is new.", "café")
	require.NoError(t, err)

	assert.Equal(t, 1, r.KeywordCount)
}

func TestAnalyze_ComplexReadabilityLosesPoints(t *testing.T) {
	r, err := seo.Analyze(strings.Repeat("characterization ", 10), "")
	require.NoError(t, err)

	assert.Equal(t, seo.ReadabilityComplex, r.Readability)
	// only the paragraph check passes
	assert.Equal(t, 15, r.Score)
}

func TestAnalyze_Idempotent(t *testing.T) {
	text := optimizedText() + "\n\nextra paragraph with content"

	first, err := seo.Analyze(text, "content")
	require.NoError(t, err)
	second, err := seo.Analyze(text, "content")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_ReadingGrade(t *testing.T) {
	r, err := seo.Analyze("The cat sat on the mat.", "")
	require.NoError(t, err)

	assert.Equal(t, 1, r.ReadingGrade)
}
