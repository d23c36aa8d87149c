package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alkime/studio/internal/platform"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/seo"
	"github.com/alkime/studio/internal/store"
)

func renderIdeas(items []store.Idea, outcome search.Outcome) string {
	var sb strings.Builder

	for i, idea := range items {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, idea.Title)
		fmt.Fprintf(&sb, "   %s\n", idea.Description)
		fmt.Fprintf(&sb, "   *%s* (%s)\n\n", idea.Value, strings.Join(idea.Tags, ", "))
	}

	if outcome.Degraded() {
		fmt.Fprintf(&sb, "_Generated from templates: %s._\n", outcome.Reason)
	}

	return sb.String()
}

func renderReport(r seo.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Words:              %d\n", r.WordCount)
	if r.Keyword != "" {
		fmt.Fprintf(&sb, "Keyword density:    %.2f%% (%d uses)\n", r.KeywordDensity, r.KeywordCount)
		fmt.Fprintf(&sb, "Keyword in intro:   %t\n", r.KeywordInIntro)
	}
	fmt.Fprintf(&sb, "Headings:           %d\n", r.Headings)
	fmt.Fprintf(&sb, "Avg paragraph:      %.0f words\n", r.AvgParagraphWords)
	fmt.Fprintf(&sb, "Links:              %d\n", r.Links)
	fmt.Fprintf(&sb, "Readability:        %s (grade %d)\n", r.Readability, r.ReadingGrade)

	sb.WriteString("\nRecommendations:\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&sb, "  - %s\n", rec)
	}

	return sb.String()
}

func renderFormats(formats map[platform.Platform]string) string {
	keys := make([]platform.Platform, 0, len(formats))
	for p := range formats {
		keys = append(keys, p)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, p := range keys {
		fmt.Fprintf(&sb, "=== %s ===\n%s\n\n", p, formats[p])
	}

	return sb.String()
}

func renderSchedule(posts []store.ScheduledPost) string {
	if len(posts) == 0 {
		return "No posts scheduled.\n"
	}

	var sb strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&sb, "%s  %s %s  %-10s %s\n", p.ID, p.Date, p.Time, p.Platform, p.Title)
	}

	return sb.String()
}

func renderAnalytics(a store.Analytics) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Ideas generated:    %d\n", a.TotalIdeas)
	fmt.Fprintf(&sb, "Content created:    %d\n", a.TotalContent)
	fmt.Fprintf(&sb, "Posts scheduled:    %d\n", a.ScheduledPosts)
	fmt.Fprintf(&sb, "Average SEO score:  %.0f\n", a.AvgSEOScore)

	return sb.String()
}
