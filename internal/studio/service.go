// Package studio wires the content engines to the store and the optional
// search backend.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alkime/studio/internal/draft"
	"github.com/alkime/studio/internal/hashtags"
	"github.com/alkime/studio/internal/ideas"
	"github.com/alkime/studio/internal/platform"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/seo"
	"github.com/alkime/studio/internal/store"
)

// SearchResults is how many results are requested from the search backend.
const SearchResults = 5

// Searcher looks up snippets for a query. Failures come back as a degraded
// outcome rather than an error.
type Searcher interface {
	Search(ctx context.Context, query string, n int) search.Outcome
}

// Service runs the studio operations against one store.
type Service struct {
	store    *store.Store
	searcher Searcher
	ideas    *ideas.Engine
	composer *draft.Composer
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a service. All collaborators are required.
func New(st *store.Store, searcher Searcher, engine *ideas.Engine, composer *draft.Composer, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		searcher: searcher,
		ideas:    engine,
		composer: composer,
		logger:   logger,
		now:      time.Now,
	}
}

// IdeasResult carries the generated ideas and how the search went.
type IdeasResult struct {
	Ideas  []store.Idea   `json:"ideas"`
	Search search.Outcome `json:"-"`
}

// GenerateIdeas validates req, consults the search backend, generates ideas
// and appends them to the store.
func (s *Service) GenerateIdeas(ctx context.Context, req ideas.Request) (IdeasResult, error) {
	if err := req.Validate(); err != nil {
		return IdeasResult{}, err
	}

	query := fmt.Sprintf("%s content ideas for %s", strings.TrimSpace(req.Topic), strings.Join(req.Categories(), ", "))
	outcome := s.searcher.Search(ctx, query, SearchResults)
	s.logOutcome("ideas", outcome)

	generated, err := s.ideas.Generate(req, outcome.Snippets)
	if err != nil {
		return IdeasResult{}, err
	}

	if err := s.store.AddIdeas(generated...); err != nil {
		return IdeasResult{}, fmt.Errorf("failed to save ideas: %w", err)
	}

	return IdeasResult{Ideas: generated, Search: outcome}, nil
}

// DraftResult carries the composed document and the stored entry.
type DraftResult struct {
	Document draft.Document
	Entry    store.ContentEntry
	Facts    []string
	Search   search.Outcome
}

// ComposeDraft drafts a document, using search facts when available, and
// appends it to the store. An empty length means medium.
func (s *Service) ComposeDraft(ctx context.Context, req draft.Request) (DraftResult, error) {
	if req.Length == "" {
		req.Length = draft.LengthMedium
	}
	if err := req.Validate(); err != nil {
		return DraftResult{}, err
	}

	outcome := s.searcher.Search(ctx, strings.TrimSpace(req.Topic), SearchResults)
	s.logOutcome("draft", outcome)
	facts := draft.ExtractFacts(outcome.Snippets)

	doc, err := s.composer.Compose(req, facts)
	if err != nil {
		return DraftResult{}, err
	}

	entry := store.ContentEntry{
		Topic:       strings.TrimSpace(req.Topic),
		ContentType: req.ContentType,
		Tone:        req.Tone,
		Length:      string(req.Length),
		Content:     doc.Markdown(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.AddContent(entry); err != nil {
		return DraftResult{}, fmt.Errorf("failed to save content: %w", err)
	}

	return DraftResult{Document: doc, Entry: entry, Facts: facts, Search: outcome}, nil
}

// AnalyzeSEO scores text and records the score against the latest content
// entry. Scoring with no content stored is not an error.
func (s *Service) AnalyzeSEO(text, keyword string) (seo.Report, error) {
	report, err := seo.Analyze(text, keyword)
	if err != nil {
		return seo.Report{}, err
	}

	err = s.store.UpdateSEOScore(report.Score)
	switch {
	case errors.Is(err, store.ErrNoContent):
		s.logger.Debug("SEO score not recorded, no content stored", "score", report.Score)
	case err != nil:
		return seo.Report{}, fmt.Errorf("failed to record SEO score: %w", err)
	}

	return report, nil
}

// FormatForPlatforms reshapes text for the selected platforms.
func (s *Service) FormatForPlatforms(text string, targets platform.Targets) (map[platform.Platform]string, error) {
	return platform.Format(text, targets)
}

// Hashtags generates a hashtag set.
func (s *Service) Hashtags(req hashtags.Request) (hashtags.Set, error) {
	return hashtags.Generate(req)
}

// SchedulePost adds a post to the calendar.
func (s *Service) SchedulePost(post store.ScheduledPost) (store.ScheduledPost, error) {
	return s.store.SchedulePost(post)
}

// DeleteScheduledPost removes a post from the calendar.
func (s *Service) DeleteScheduledPost(id string) error {
	return s.store.DeleteScheduledPost(id)
}

// ScheduledPosts lists the calendar.
func (s *Service) ScheduledPosts() []store.ScheduledPost {
	return s.store.Snapshot().Scheduled
}

// Analytics returns the current counters.
func (s *Service) Analytics() store.Analytics {
	return s.store.Snapshot().Analytics
}

// LastContent returns the most recent content body.
func (s *Service) LastContent() (string, error) {
	entry, ok := s.store.LastContent()
	if !ok {
		return "", store.ErrNoContent
	}
	return entry.Content, nil
}

// DownloadName is the artifact file name for the given time.
func DownloadName(t time.Time) string {
	return fmt.Sprintf("content-%d.txt", t.UnixMilli())
}

// Download writes the last generated content body to dir and returns the path.
func (s *Service) Download(dir string) (string, error) {
	body, err := s.LastContent()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, DownloadName(s.now()))
	//nolint:gosec // downloads are meant to be readable
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write download: %w", err)
	}

	s.logger.Info("Content downloaded", "path", path)

	return path, nil
}

func (s *Service) logOutcome(op string, outcome search.Outcome) {
	if outcome.Degraded() {
		s.logger.Debug("Generating via templates", "op", op, "reason", outcome.Reason)
		return
	}
	s.logger.Debug("Generating with search results", "op", op, "results", len(outcome.Snippets))
}
