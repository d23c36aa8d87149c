// Package ideas builds content ideas from canned templates, optionally mixed
// with search snippets.
package ideas

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/store"
	"github.com/alkime/studio/internal/validation"
	"github.com/alkime/studio/pkg/collections"
	"github.com/google/uuid"
)

// MaxIdeas caps how many ideas one call returns.
const MaxIdeas = 5

// Audience categories. Each one unlocks two templates.
const (
	CategoryWriter   = "writer"
	CategoryCreator  = "creator"
	CategoryBusiness = "business"
)

// Request selects the topic and the audiences to generate for.
type Request struct {
	Topic    string `json:"topic" validate:"notblank"`
	Writer   bool   `json:"writer"`
	Creator  bool   `json:"creator"`
	Business bool   `json:"business"`
}

// Categories returns the active audience filters in a stable order.
func (r Request) Categories() []string {
	var out []string
	if r.Writer {
		out = append(out, CategoryWriter)
	}
	if r.Creator {
		out = append(out, CategoryCreator)
	}
	if r.Business {
		out = append(out, CategoryBusiness)
	}
	return out
}

// Candidate is an idea before it has been given an ID.
type Candidate struct {
	Title       string
	Description string
	Value       string
	Category    string
	Tags        []string
}

type template func(topic string) Candidate

var templates = map[string][]template{
	CategoryWriter: {
		func(topic string) Candidate {
			return Candidate{
				Title:       fmt.Sprintf("Complete Guide to %s for Beginners", topic),
				Description: fmt.Sprintf("A comprehensive introduction covering everything you need to know about %s.", topic),
				Value:       "Great for educating writers who are just starting out",
				Tags:        []string{"guide", "beginners"},
			}
		},
		func(topic string) Candidate {
			return Candidate{
				Title:       fmt.Sprintf("Common %s Mistakes to Avoid", topic),
				Description: fmt.Sprintf("Learn from others' mistakes and avoid common pitfalls in %s.", topic),
				Value:       "Helps writers save time and avoid frustration",
				Tags:        []string{"mistakes", "tips"},
			}
		},
	},
	CategoryCreator: {
		func(topic string) Candidate {
			return Candidate{
				Title:       fmt.Sprintf("Top 10 %s Trends to Watch", topic),
				Description: fmt.Sprintf("Explore the latest trends and innovations in %s that are shaping the industry.", topic),
				Value:       "Perfect for creators looking to stay ahead of the curve",
				Tags:        []string{"trends", "listicle"},
			}
		},
		func(topic string) Candidate {
			return Candidate{
				Title:       fmt.Sprintf("Behind the Scenes: How I Approach %s", topic),
				Description: fmt.Sprintf("A personal walkthrough of the tools and routines behind great %s content.", topic),
				Value:       "Builds trust and connection with a creator's audience",
				Tags:        []string{"behind-the-scenes", "story"},
			}
		},
	},
	CategoryBusiness: {
		func(topic string) Candidate {
			return Candidate{
				Title:       fmt.Sprintf("%s Best Practices and ROI", topic),
				Description: fmt.Sprintf("Proven strategies for turning %s into measurable business results.", topic),
				Value:       "Valuable insights for businesses at any level",
				Tags:        []string{"strategy", "roi"},
			}
		},
		func(topic string) Candidate {
			return Candidate{
				Title:       fmt.Sprintf("Future of %s: What to Expect", topic),
				Description: fmt.Sprintf("Predictions and insights about where %s is heading in the coming years.", topic),
				Value:       "Forward-thinking content for businesses planning ahead",
				Tags:        []string{"future", "predictions"},
			}
		},
	},
}

// Engine selects ideas. Its randomness is injected so callers can seed it.
// An Engine is safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	rng   *rand.Rand
	newID func() string
}

// NewEngine creates an engine shuffling with rng. A nil rng uses a randomly
// seeded source.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{rng: rng, newID: uuid.NewString}
}

// Validate checks the topic and that at least one audience is selected.
func (r Request) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if len(r.Categories()) == 0 {
		return validation.New("audience", "select at least one audience")
	}
	return nil
}

// Catalog returns every candidate the request can draw from, in a fixed
// order: templates for each active category, then one candidate per snippet.
// Snippet candidates take the active categories in turn.
func Catalog(req Request, snippets []search.Snippet) ([]Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	categories := req.Categories()

	topic := strings.TrimSpace(req.Topic)
	var catalog []Candidate
	for _, category := range categories {
		for _, tmpl := range templates[category] {
			c := tmpl(topic)
			c.Category = category
			c.Tags = append([]string{category}, c.Tags...)
			catalog = append(catalog, c)
		}
	}

	usable := collections.Filter(snippets, func(s search.Snippet) bool {
		return strings.TrimSpace(s.Title) != "" && strings.TrimSpace(s.Text) != ""
	})
	for i, s := range usable {
		category := categories[i%len(categories)]
		catalog = append(catalog, Candidate{
			Title:       strings.TrimSpace(s.Title),
			Description: strings.TrimSpace(s.Text),
			Value:       "Based on current trends",
			Category:    category,
			Tags:        []string{category, "trending"},
		})
	}

	return catalog, nil
}

// Generate shuffles the catalog and returns up to MaxIdeas ideas with fresh IDs.
func (e *Engine) Generate(req Request, snippets []search.Snippet) ([]store.Idea, error) {
	catalog, err := Catalog(req, snippets)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.rng.Shuffle(len(catalog), func(i, j int) {
		catalog[i], catalog[j] = catalog[j], catalog[i]
	})
	e.mu.Unlock()

	return collections.Apply(collections.Take(catalog, MaxIdeas), func(c Candidate) store.Idea {
		return store.Idea{
			ID:          e.newID(),
			Title:       c.Title,
			Description: c.Description,
			Value:       c.Value,
			Category:    c.Category,
			Tags:        c.Tags,
		}
	}), nil
}
