package store

import "time"

// Document is the whole persisted state. It is rewritten on every mutation.
type Document struct {
	Ideas     []Idea          `json:"ideas"`
	Content   []ContentEntry  `json:"content"`
	Scheduled []ScheduledPost `json:"scheduled"`
	Analytics Analytics       `json:"analytics"`
}

// Idea is a generated content idea. Ideas are appended and never mutated.
type Idea struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Value       string   `json:"value"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// ContentEntry is a drafted document. SEOScore is set once the text is scored.
type ContentEntry struct {
	Topic       string    `json:"topic"`
	ContentType string    `json:"contentType"`
	Tone        string    `json:"tone"`
	Length      string    `json:"length"`
	Content     string    `json:"content"`
	SEOScore    *int      `json:"seoScore,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ScheduledPost is a calendar entry. ID is the deletion key.
type ScheduledPost struct {
	ID       string `json:"id"`
	Title    string `json:"title" validate:"notblank"`
	Platform string `json:"platform"`
	Date     string `json:"date" validate:"notblank"`
	Time     string `json:"time" validate:"notblank"`
}

// Analytics holds counters derived from the document.
type Analytics struct {
	TotalIdeas     int     `json:"totalIdeas"`
	TotalContent   int     `json:"totalContent"`
	ScheduledPosts int     `json:"scheduledPosts"`
	AvgSEOScore    float64 `json:"avgSeoScore"`
}

func (d Document) clone() Document {
	out := Document{
		Ideas:     make([]Idea, len(d.Ideas)),
		Content:   make([]ContentEntry, len(d.Content)),
		Scheduled: make([]ScheduledPost, len(d.Scheduled)),
		Analytics: d.Analytics,
	}

	for i, idea := range d.Ideas {
		idea.Tags = append([]string(nil), idea.Tags...)
		out.Ideas[i] = idea
	}
	for i, entry := range d.Content {
		if entry.SEOScore != nil {
			score := *entry.SEOScore
			entry.SEOScore = &score
		}
		out.Content[i] = entry
	}
	copy(out.Scheduled, d.Scheduled)

	return out
}
