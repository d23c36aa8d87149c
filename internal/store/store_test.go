package store_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alkime/studio/internal/store"
	"github.com/alkime/studio/internal/validation"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTemp(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "studio.json")
	s, err := store.Open(path, testLogger())
	require.NoError(t, err)
	return s, path
}

func assertCountsMatch(t *testing.T, doc store.Document) {
	t.Helper()
	assert.Equal(t, len(doc.Ideas), doc.Analytics.TotalIdeas)
	assert.Equal(t, len(doc.Content), doc.Analytics.TotalContent)
	assert.Equal(t, len(doc.Scheduled), doc.Analytics.ScheduledPosts)
}

func TestOpen_MissingFile(t *testing.T) {
	s, _ := openTemp(t)

	doc := s.Snapshot()
	assert.Empty(t, doc.Ideas)
	assert.Empty(t, doc.Content)
	assert.Empty(t, doc.Scheduled)
	assert.Equal(t, store.Analytics{}, doc.Analytics)
}

func TestOpen_MalformedJSONIsTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := store.Open(path, testLogger())
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().Ideas)
}

func TestOpen_AcceptsUnknownShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","ideas":[{"id":"a","title":"T"}]}`), 0o600))

	s, err := store.Open(path, testLogger())
	require.NoError(t, err)
	require.Len(t, s.Snapshot().Ideas, 1)
	assert.Equal(t, "T", s.Snapshot().Ideas[0].Title)
}

func TestAddContent_RoundTrip(t *testing.T) {
	s, path := openTemp(t)

	require.NoError(t, s.AddContent(store.ContentEntry{Topic: "first", Content: "body one"}))
	before := s.Snapshot()

	entry := store.ContentEntry{
		Topic:       "Remote Work",
		ContentType: "blog",
		Tone:        "casual",
		Length:      "medium",
		Content:     "# Remote Work\n\nBody",
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.AddContent(entry))
	inMemory := s.Snapshot()

	reloaded, err := store.Open(path, testLogger())
	require.NoError(t, err)
	doc := reloaded.Snapshot()

	assert.Equal(t, before.Analytics.TotalContent+1, doc.Analytics.TotalContent)
	if diff := cmp.Diff(entry, doc.Content[len(doc.Content)-1]); diff != "" {
		t.Errorf("last content entry mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(inMemory, doc); diff != "" {
		t.Errorf("reloaded document mismatch (-want +got):\n%s", diff)
	}
	assertCountsMatch(t, doc)
}

func TestAddContent_RequiresBody(t *testing.T) {
	s, path := openTemp(t)

	err := s.AddContent(store.ContentEntry{Topic: "x"})
	assert.True(t, validation.Is(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "store must not be written on validation failure")
}

func TestAddIdeas(t *testing.T) {
	s, _ := openTemp(t)

	require.NoError(t, s.AddIdeas(
		store.Idea{ID: "1", Title: "A", Tags: []string{"writer"}},
		store.Idea{ID: "2", Title: "B", Tags: []string{"business"}},
	))

	doc := s.Snapshot()
	require.Len(t, doc.Ideas, 2)
	assert.Equal(t, "A", doc.Ideas[0].Title)
	assertCountsMatch(t, doc)

	// snapshots are copies
	doc.Ideas[0].Tags[0] = "mutated"
	assert.Equal(t, "writer", s.Snapshot().Ideas[0].Tags[0])
}

func TestScheduleAndDelete(t *testing.T) {
	s, _ := openTemp(t)

	first, err := s.SchedulePost(store.ScheduledPost{Title: "Launch", Platform: "twitter", Date: "2026-11-01", Time: "09:00"})
	require.NoError(t, err)
	second, err := s.SchedulePost(store.ScheduledPost{Title: "Recap", Platform: "linkedin", Date: "2026-11-02", Time: "10:00"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, s.Snapshot().Analytics.ScheduledPosts)

	require.NoError(t, s.DeleteScheduledPost(first.ID))
	doc := s.Snapshot()
	require.Len(t, doc.Scheduled, 1)
	assert.Equal(t, second.ID, doc.Scheduled[0].ID)
	assertCountsMatch(t, doc)

	err = s.DeleteScheduledPost(first.ID)
	require.ErrorIs(t, err, store.ErrPostNotFound)
	assert.Len(t, s.Snapshot().Scheduled, 1)
}

func TestSchedulePost_Validation(t *testing.T) {
	s, _ := openTemp(t)

	_, err := s.SchedulePost(store.ScheduledPost{Title: "No date", Time: "09:00"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
	assert.Empty(t, s.Snapshot().Scheduled)
}

func TestUpdateSEOScore(t *testing.T) {
	s, _ := openTemp(t)

	require.ErrorIs(t, s.UpdateSEOScore(50), store.ErrNoContent)

	require.NoError(t, s.AddContent(store.ContentEntry{Topic: "a", Content: "a"}))
	require.NoError(t, s.UpdateSEOScore(60))
	require.NoError(t, s.AddContent(store.ContentEntry{Topic: "b", Content: "b"}))
	require.NoError(t, s.UpdateSEOScore(80))
	require.NoError(t, s.AddContent(store.ContentEntry{Topic: "c", Content: "c"}))
	require.NoError(t, s.UpdateSEOScore(0))

	doc := s.Snapshot()
	require.NotNil(t, doc.Content[0].SEOScore)
	assert.Equal(t, 60, *doc.Content[0].SEOScore)
	assert.InDelta(t, 70.0, doc.Analytics.AvgSEOScore, 1e-9, "zero scores are excluded from the mean")

	last, ok := s.LastContent()
	require.True(t, ok)
	assert.Equal(t, "c", last.Topic)
}
