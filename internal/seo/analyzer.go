// Package seo scores text against simple on-page SEO heuristics.
package seo

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alkime/studio/internal/validation"
	"github.com/alkime/studio/pkg/collections"
)

// Points awarded per check. They sum to 100.
const (
	pointsWordCount   = 20
	pointsDensity     = 25
	pointsHeadings    = 20
	pointsParagraphs  = 15
	pointsLinks       = 10
	pointsReadability = 10
)

// Thresholds for the checks.
const (
	MinWords             = 300
	MaxWords             = 2000
	MinDensity           = 1.0
	MaxDensity           = 3.0
	MinHeadings          = 3
	MaxParagraphWords    = 150
	MinLinks             = 2
	ComplexAvgWordLength = 6.0
)

// Readability labels.
const (
	ReadabilityGood    = "Good"
	ReadabilityComplex = "Complex"
)

// WellOptimized replaces the recommendations when no check raised an advisory.
const WellOptimized = "Great job! Your content is well optimized for SEO."

var (
	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s`)
	linkPattern      = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
	paragraphPattern = regexp.MustCompile(`\n\s*\n`)
)

// Report is the outcome of an analysis.
type Report struct {
	Score             int      `json:"score"`
	WordCount         int      `json:"wordCount"`
	Keyword           string   `json:"keyword,omitempty"`
	KeywordCount      int      `json:"keywordCount"`
	KeywordDensity    float64  `json:"keywordDensity"`
	KeywordInIntro    bool     `json:"keywordInIntro"`
	Headings          int      `json:"headings"`
	AvgParagraphWords float64  `json:"avgParagraphWords"`
	Links             int      `json:"links"`
	AvgWordLength     float64  `json:"avgWordLength"`
	Readability       string   `json:"readability"`
	ReadingGrade      int      `json:"readingGrade"`
	Recommendations   []string `json:"recommendations"`
}

// Analyze scores text. keyword is optional; without it the density check
// only yields an advisory. The result depends on the inputs alone.
func Analyze(text, keyword string) (Report, error) {
	if err := validation.Required("content", text); err != nil {
		return Report{}, err
	}

	keyword = strings.TrimSpace(keyword)
	words := strings.Fields(text)

	r := Report{
		WordCount: len(words),
		Keyword:   keyword,
	}

	var score int
	var advice []string

	switch {
	case r.WordCount < MinWords:
		advice = append(advice, fmt.Sprintf("Content is too short (%d words). Aim for at least %d words.", r.WordCount, MinWords))
	case r.WordCount > MaxWords:
		advice = append(advice, fmt.Sprintf("Content is very long (%d words). Consider splitting it into multiple pieces.", r.WordCount))
	default:
		score += pointsWordCount
	}

	if keyword == "" {
		advice = append(advice, "Set a focus keyword to measure keyword density.")
	} else {
		r.KeywordCount = countKeyword(text, keyword)
		r.KeywordDensity = round2(float64(r.KeywordCount) / float64(r.WordCount) * 100)
		r.KeywordInIntro = countKeyword(strings.Join(collections.Take(words, 100), " "), keyword) > 0

		switch {
		case r.KeywordDensity < MinDensity:
			advice = append(advice, fmt.Sprintf("Keyword density is too low (%.2f%%). Use %q more often (aim for 1-3%%).", r.KeywordDensity, keyword))
		case r.KeywordDensity > MaxDensity:
			advice = append(advice, fmt.Sprintf("Keyword density is too high (%.2f%%). Reduce use of %q to avoid keyword stuffing.", r.KeywordDensity, keyword))
		default:
			score += pointsDensity
		}
	}

	r.Headings = len(headingPattern.FindAllStringIndex(text, -1))
	if r.Headings >= MinHeadings {
		score += pointsHeadings
	} else {
		advice = append(advice, fmt.Sprintf("Add more headings to structure your content (found %d, aim for at least %d).", r.Headings, MinHeadings))
	}

	r.AvgParagraphWords = round2(avgParagraphWords(text))
	if r.AvgParagraphWords <= MaxParagraphWords {
		score += pointsParagraphs
	} else {
		advice = append(advice, "Paragraphs are too long. Break them up to improve readability.")
	}

	r.Links = len(linkPattern.FindAllStringIndex(text, -1))
	if r.Links >= MinLinks {
		score += pointsLinks
	} else {
		advice = append(advice, fmt.Sprintf("Add more links to relevant resources (found %d, aim for at least %d).", r.Links, MinLinks))
	}

	r.AvgWordLength = round2(avgWordLength(words))
	if r.AvgWordLength > ComplexAvgWordLength {
		r.Readability = ReadabilityComplex
		advice = append(advice, "Simplify your language. Shorter words make content easier to read.")
	} else {
		r.Readability = ReadabilityGood
		score += pointsReadability
	}

	r.ReadingGrade = readingGrade(text, len(words))
	r.Score = collections.Clamp(score, 0, 100)

	if len(advice) == 0 {
		advice = []string{WellOptimized}
	}
	r.Recommendations = advice

	return r, nil
}

// countKeyword counts case-insensitive whole-word uses of keyword. A hit
// whose neighbouring rune is a letter or digit is part of a longer word,
// unless the keyword itself ends in a symbol there (C++, C#).
func countKeyword(text, keyword string) int {
	text, keyword = strings.ToLower(text), strings.ToLower(keyword)
	if keyword == "" {
		return 0
	}

	first, _ := utf8.DecodeRuneInString(keyword)
	last, _ := utf8.DecodeLastRuneInString(keyword)

	count := 0
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], keyword)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(keyword)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !(isWordRune(first) && start > 0 && isWordRune(before)) &&
			!(isWordRune(last) && end < len(text) && isWordRune(after)) {
			count++
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}

	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func avgParagraphWords(text string) float64 {
	var counts []int
	for _, block := range paragraphPattern.Split(strings.TrimSpace(text), -1) {
		if n := len(strings.Fields(block)); n > 0 {
			counts = append(counts, n)
		}
	}
	return collections.Mean(counts)
}

// avgWordLength averages the letters per word, ignoring words with none.
func avgWordLength(words []string) float64 {
	var lengths []int
	for _, w := range words {
		letters := 0
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters > 0 {
			lengths = append(lengths, letters)
		}
	}
	return collections.Mean(lengths)
}

// readingGrade is the Automated Readability Index, at least 1.
func readingGrade(text string, words int) int {
	sentences := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	if sentences == 0 {
		sentences = 1
	}
	if words == 0 {
		words = 1
	}

	chars := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			chars++
		}
	}

	ari := 4.71*(float64(chars)/float64(words)) + 0.5*(float64(words)/float64(sentences)) - 21.43
	return max(int(math.Ceil(ari)), 1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
