// Package draft composes long-form markdown documents from a topic and tone.
package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/studio/internal/validation"
)

// Length is a structural target. It picks sections; it does not enforce a
// word count.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// TargetWords returns the approximate word target for the length.
func (l Length) TargetWords() int {
	switch l {
	case LengthShort:
		return 400
	case LengthLong:
		return 1500
	default:
		return 750
	}
}

// MaxFacts caps the facts used in the Current Insights section.
const MaxFacts = 3

// Request describes the document to compose.
type Request struct {
	Topic       string   `json:"topic" validate:"notblank"`
	ContentType string   `json:"contentType"`
	Tone        string   `json:"tone"`
	Length      Length   `json:"length" validate:"oneof=short medium long"`
	Keywords    []string `json:"keywords"`
}

// Validate checks the topic and length.
func (r Request) Validate() error {
	return validation.Struct(r)
}

// Section is one headed block of the document.
type Section struct {
	Heading    string
	Paragraphs []string
	Steps      []string
}

// Document is a composed draft.
type Document struct {
	Title    string
	Date     time.Time
	Sections []Section
	Keywords []string
}

// Composer builds documents. The clock stamps the publication date.
type Composer struct {
	now func() time.Time
}

// NewComposer creates a composer using the wall clock.
func NewComposer() *Composer {
	return &Composer{now: time.Now}
}

// NewComposerWithClock creates a composer with a fixed clock.
func NewComposerWithClock(now func() time.Time) *Composer {
	return &Composer{now: now}
}

// Compose builds the section skeleton for req. Facts, when present, add a
// Current Insights section; only the first MaxFacts are used.
func (c *Composer) Compose(req Request, facts []string) (Document, error) {
	if err := req.Validate(); err != nil {
		return Document{}, err
	}

	topic := strings.TrimSpace(req.Topic)
	kind := contentKind(req.ContentType)
	v := voiceFor(req.Tone)

	doc := Document{
		Title:    titleFor(topic, kind),
		Date:     c.now(),
		Keywords: cleanKeywords(req.Keywords),
	}

	doc.Sections = append(doc.Sections,
		Section{
			Heading: "Introduction",
			Paragraphs: []string{
				fmt.Sprintf(v.opener, topic),
				fmt.Sprintf("In this %s, we'll explore the key aspects of %s, why it matters, and how you can put it to work. %s", kind, topic, v.promise),
			},
		},
		Section{
			Heading: "Understanding " + topic,
			Paragraphs: []string{
				fmt.Sprintf("At its core, %s is about delivering consistent value to the people you serve. Getting the fundamentals right makes every later step easier.", topic),
				fmt.Sprintf("Successful approaches to %s share a few traits: clear goals, a repeatable process, and a habit of measuring what works.", topic),
			},
		},
	)

	if len(facts) > 0 {
		if len(facts) > MaxFacts {
			facts = facts[:MaxFacts]
		}
		doc.Sections = append(doc.Sections, Section{
			Heading:    "Current Insights",
			Paragraphs: []string{fmt.Sprintf("Recent coverage of %s highlights a few points worth knowing:", topic)},
			Steps:      append([]string(nil), facts...),
		})
	}

	doc.Sections = append(doc.Sections, Section{
		Heading:    "Practical Applications",
		Paragraphs: []string{fmt.Sprintf("Here is how to apply %s step by step:", topic)},
		Steps: []string{
			fmt.Sprintf("Define what success with %s looks like for you.", topic),
			"Audit where you are today and pick one area to improve first.",
			"Build a simple, repeatable routine around that area.",
			"Measure results every week and adjust.",
			"Share what you learn to reinforce it.",
		},
	})

	if req.Length == LengthLong {
		doc.Sections = append(doc.Sections,
			Section{
				Heading: "Advanced Strategies",
				Paragraphs: []string{
					fmt.Sprintf("Once the basics are in place, experienced practitioners push %s further by automating routine work, testing new formats, and building on what the data shows.", topic),
					"Pair each experiment with a clear hypothesis so you know what to keep and what to drop.",
				},
			},
			Section{
				Heading: "Common Challenges",
				Paragraphs: []string{
					fmt.Sprintf("Even well-planned %s efforts hit obstacles: limited time, inconsistent execution, and results that take longer than expected.", topic),
					"Plan for these up front, keep your scope small, and treat setbacks as information rather than failure.",
				},
			},
		)
	}

	doc.Sections = append(doc.Sections, Section{
		Heading:    "Conclusion",
		Paragraphs: []string{fmt.Sprintf(v.closer, topic)},
	})

	return doc, nil
}

// Markdown renders the document body.
func (d Document) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# " + d.Title + "\n\n")
	sb.WriteString("*Published: " + d.Date.Format("January 2, 2006") + "*\n\n")

	for _, s := range d.Sections {
		sb.WriteString("## " + s.Heading + "\n\n")
		for _, p := range s.Paragraphs {
			sb.WriteString(p + "\n\n")
		}
		for i, step := range s.Steps {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
		}
		if len(s.Steps) > 0 {
			sb.WriteString("\n")
		}
	}

	if len(d.Keywords) > 0 {
		sb.WriteString("---\n\n")
		sb.WriteString("*Keywords: " + strings.Join(d.Keywords, ", ") + "*\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// Headings returns the section headings in order.
func (d Document) Headings() []string {
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.Heading
	}
	return out
}

func titleFor(topic, kind string) string {
	switch kind {
	case "guide":
		return "The Complete Guide to " + topic
	case "listicle":
		return "Essential " + topic + " Tips You Can Use Today"
	case "case study":
		return topic + ": A Case Study"
	default:
		return topic + ": What You Need to Know"
	}
}

func contentKind(contentType string) string {
	kind := strings.ToLower(strings.TrimSpace(contentType))
	switch kind {
	case "", "blog", "blog post", "article":
		return "article"
	case "case-study":
		return "case study"
	default:
		return kind
	}
}

func cleanKeywords(keywords []string) []string {
	var out []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
