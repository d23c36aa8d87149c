// Package store persists the studio document as a single JSON file.
//
// Every mutation rewrites the whole document. Writes go to a temporary file
// that is renamed over the previous one, so a reader never sees a partial
// document. There is no transactionality across calls.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alkime/studio/internal/validation"
	"github.com/alkime/studio/pkg/collections"
	"github.com/google/uuid"
)

var (
	// ErrNoContent is returned when an operation needs a content entry and none exists.
	ErrNoContent = errors.New("no content generated yet")
	// ErrPostNotFound is returned when deleting an unknown scheduled post.
	ErrPostNotFound = errors.New("scheduled post not found")
)

// Store owns the document and its file.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	doc    Document
	now    func() time.Time
}

// Open loads the document at path. A missing file or a file that does not
// parse as JSON yields an empty document.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("No store document found, starting empty", "path", path)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read store document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Store document is not valid JSON, starting empty", "path", path, "error", err)
		return s, nil
	}

	s.doc = doc
	logger.Debug("Loaded store document",
		"path", path,
		"ideas", len(doc.Ideas),
		"content", len(doc.Content),
		"scheduled", len(doc.Scheduled),
	)

	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.clone()
}

// LastContent returns the most recently added content entry.
func (s *Store) LastContent() (ContentEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.doc.Content) == 0 {
		return ContentEntry{}, false
	}
	return s.doc.clone().Content[len(s.doc.Content)-1], true
}

// AddIdeas appends ideas in order.
func (s *Store) AddIdeas(ideas ...Idea) error {
	return s.mutate(func(doc *Document) error {
		for _, idea := range ideas {
			idea.Tags = append([]string(nil), idea.Tags...)
			doc.Ideas = append(doc.Ideas, idea)
		}
		return nil
	})
}

// AddContent appends a content entry. CreatedAt defaults to now.
func (s *Store) AddContent(entry ContentEntry) error {
	if err := validation.Required("content", entry.Content); err != nil {
		return err
	}

	return s.mutate(func(doc *Document) error {
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = s.now().UTC()
		}
		doc.Content = append(doc.Content, entry)
		return nil
	})
}

// SchedulePost validates and appends a post, assigning it a fresh ID.
func (s *Store) SchedulePost(post ScheduledPost) (ScheduledPost, error) {
	if err := validation.Struct(post); err != nil {
		return ScheduledPost{}, err
	}
	post.ID = uuid.NewString()

	err := s.mutate(func(doc *Document) error {
		doc.Scheduled = append(doc.Scheduled, post)
		return nil
	})
	if err != nil {
		return ScheduledPost{}, err
	}

	return post, nil
}

// DeleteScheduledPost removes the post with the given ID.
func (s *Store) DeleteScheduledPost(id string) error {
	return s.mutate(func(doc *Document) error {
		kept := collections.Filter(doc.Scheduled, func(p ScheduledPost) bool {
			return p.ID != id
		})
		if len(kept) == len(doc.Scheduled) {
			return fmt.Errorf("%w: %s", ErrPostNotFound, id)
		}
		doc.Scheduled = kept
		return nil
	})
}

// UpdateSEOScore records score against the most recent content entry and
// recomputes the average over every non-zero recorded score.
func (s *Store) UpdateSEOScore(score int) error {
	return s.mutate(func(doc *Document) error {
		if len(doc.Content) == 0 {
			return ErrNoContent
		}
		doc.Content[len(doc.Content)-1].SEOScore = &score
		return nil
	})
}

// mutate applies fn to a copy of the document, persists it, and only then
// makes it current. A failed write leaves the in-memory document untouched.
func (s *Store) mutate(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.Analytics = recompute(next)

	if err := s.write(next); err != nil {
		return err
	}
	s.doc = next

	return nil
}

func recompute(doc Document) Analytics {
	var scores []int
	for _, entry := range doc.Content {
		if entry.SEOScore != nil && *entry.SEOScore != 0 {
			scores = append(scores, *entry.SEOScore)
		}
	}

	return Analytics{
		TotalIdeas:     len(doc.Ideas),
		TotalContent:   len(doc.Content),
		ScheduledPosts: len(doc.Scheduled),
		AvgSEOScore:    collections.Mean(scores),
	}
}

func (s *Store) write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write store document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace store document: %w", err)
	}

	s.logger.Debug("Store document written",
		"path", s.path,
		"ideas", doc.Analytics.TotalIdeas,
		"content", doc.Analytics.TotalContent,
		"scheduled", doc.Analytics.ScheduledPosts,
	)

	return nil
}
