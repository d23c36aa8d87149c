package draft

import (
	"strings"
	"unicode/utf8"

	"github.com/alkime/studio/internal/search"
)

const (
	minFactLen = 40
	maxFactLen = 150

	terminators = ".!?"
)

// ExtractFacts splits snippet text into sentences and keeps those between
// 40 and 150 characters, in order. A fact keeps its own terminator, or gets
// a period when the snippet ends mid-sentence.
func ExtractFacts(snippets []search.Snippet) []string {
	var facts []string
	for _, s := range snippets {
		for _, sentence := range sentences(s.Text) {
			n := utf8.RuneCountInString(sentence.body)
			if n < minFactLen || n > maxFactLen {
				continue
			}
			facts = append(facts, sentence.body+sentence.terminator)
		}
	}
	return facts
}

type sentence struct {
	body       string
	terminator string
}

// sentences splits text after each run of '.', '!' or '?'.
func sentences(text string) []sentence {
	var out []sentence
	add := func(body, terminator string) {
		if body = strings.TrimSpace(body); body != "" {
			out = append(out, sentence{body: body, terminator: terminator})
		}
	}

	start := 0
	for start < len(text) {
		i := strings.IndexAny(text[start:], terminators)
		if i < 0 {
			add(text[start:], ".")
			break
		}
		end := start + i
		next := end
		for next < len(text) && strings.IndexByte(terminators, text[next]) >= 0 {
			next++
		}
		add(text[start:end], text[end:next])
		start = next
	}

	return out
}
