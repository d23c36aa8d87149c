package draft_test

import (
	"strings"
	"testing"
	"time"

	"github.com/alkime/studio/internal/draft"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedDate = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newComposer() *draft.Composer {
	return draft.NewComposerWithClock(func() time.Time { return fixedDate })
}

func TestCompose_Sections(t *testing.T) {
	tests := []struct {
		name     string
		length   draft.Length
		facts    []string
		expected []string
	}{
		{
			name:   "short without facts",
			length: draft.LengthShort,
			expected: []string{
				"Introduction", "Understanding Remote Work", "Practical Applications", "Conclusion",
			},
		},
		{
			name:   "medium with facts",
			length: draft.LengthMedium,
			facts:  []string{"fact one"},
			expected: []string{
				"Introduction", "Understanding Remote Work", "Current Insights", "Practical Applications", "Conclusion",
			},
		},
		{
			name:   "long unlocks extra sections",
			length: draft.LengthLong,
			expected: []string{
				"Introduction", "Understanding Remote Work", "Practical Applications",
				"Advanced Strategies", "Common Challenges", "Conclusion",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newComposer().Compose(draft.Request{
				Topic:  "Remote Work",
				Tone:   "casual",
				Length: tt.length,
			}, tt.facts)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, doc.Headings())
		})
	}
}

func TestCompose_FactsAreCapped(t *testing.T) {
	facts := []string{"one", "two", "three", "four", "five"}

	doc, err := newComposer().Compose(draft.Request{Topic: "SEO", Length: draft.LengthMedium}, facts)
	require.NoError(t, err)

	insights := doc.Sections[2]
	require.Equal(t, "Current Insights", insights.Heading)
	assert.Equal(t, []string{"one", "two", "three"}, insights.Steps)
	assert.Len(t, facts, 5, "caller slice untouched")
}

func TestCompose_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   draft.Request
		field string
	}{
		{name: "empty topic", req: draft.Request{Length: draft.LengthShort}, field: "topic"},
		{name: "blank topic", req: draft.Request{Topic: "  ", Length: draft.LengthShort}, field: "topic"},
		{name: "unknown length", req: draft.Request{Topic: "SEO", Length: "epic"}, field: "length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newComposer().Compose(tt.req, nil)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDocument_Markdown(t *testing.T) {
	doc, err := newComposer().Compose(draft.Request{
		Topic:       "Email Marketing",
		ContentType: "guide",
		Tone:        "friendly",
		Length:      draft.LengthShort,
		Keywords:    []string{"email", " ", "newsletter"},
	}, nil)
	require.NoError(t, err)

	md := doc.Markdown()

	assert.True(t, strings.HasPrefix(md, "# The Complete Guide to Email Marketing\n\n*Published: October 18, 2026*"))
	assert.Contains(t, md, "## Understanding Email Marketing")
	assert.Contains(t, md, "1. Define what success with Email Marketing looks like for you.")
	assert.Contains(t, md, "Thanks for reading!")
	assert.True(t, strings.HasSuffix(md, "*Keywords: email, newsletter*\n"))
}

func TestCompose_UnknownToneFallsBack(t *testing.T) {
	doc, err := newComposer().Compose(draft.Request{Topic: "SEO", Tone: "sarcastic", Length: draft.LengthShort}, nil)
	require.NoError(t, err)

	assert.Contains(t, doc.Markdown(), "In today's landscape, SEO")
}

func TestLength_TargetWords(t *testing.T) {
	assert.Equal(t, 400, draft.LengthShort.TargetWords())
	assert.Equal(t, 750, draft.LengthMedium.TargetWords())
	assert.Equal(t, 1500, draft.LengthLong.TargetWords())
}

func TestExtractFacts(t *testing.T) {
	snippets := []search.Snippet{
		{Text: "Too short. Remote teams that document decisions ship features noticeably faster! Ok?"},
		{Text: strings.Repeat("x", 151) + ". Content marketing budgets grew across most industries this year"},
	}

	facts := draft.ExtractFacts(snippets)

	assert.Equal(t, []string{
		"Remote teams that document decisions ship features noticeably faster!",
		"Content marketing budgets grew across most industries this year.",
	}, facts)
}

func TestExtractFacts_KeepsTerminators(t *testing.T) {
	facts := draft.ExtractFacts([]search.Snippet{
		{Text: "Is your content calendar really working for the whole team?! " +
			"Short one... Video posts earn more engagement than static images on most platforms."},
	})

	assert.Equal(t, []string{
		"Is your content calendar really working for the whole team?!",
		"Video posts earn more engagement than static images on most platforms.",
	}, facts)
}
