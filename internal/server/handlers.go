package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alkime/studio/internal/draft"
	"github.com/alkime/studio/internal/hashtags"
	"github.com/alkime/studio/internal/ideas"
	"github.com/alkime/studio/internal/platform"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/store"
	"github.com/alkime/studio/internal/studio"
	"github.com/alkime/studio/internal/validation"
	"github.com/gin-gonic/gin"
)

const (
	sourceWeb       = "web"
	sourceTemplates = "templates"
)

type seoRequest struct {
	Content string `json:"content"`
	Keyword string `json:"keyword"`
}

type formatRequest struct {
	Content string `json:"content"`
	platform.Targets
}

type hashtagRequest struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Count    int    `json:"count"`
}

// handleWebSearch serves live results, or templates when the provider has none.
func (s *Server) handleWebSearch(c *gin.Context) {
	var req search.Request
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	results := s.backend.Search(c.Request.Context(), req.Query, req.NumResults)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   req.Query,
		"results": results,
	})
}

func (s *Server) handleIdeas(c *gin.Context) {
	var req ideas.Request
	if !s.bind(c, &req) {
		return
	}

	result, err := s.studio.GenerateIdeas(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ideas":  result.Ideas,
		"source": source(result.Search),
	})
}

func (s *Server) handleContent(c *gin.Context) {
	var req draft.Request
	if !s.bind(c, &req) {
		return
	}

	result, err := s.studio.ComposeDraft(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   result.Document.Title,
		"content": result.Entry.Content,
		"entry":   result.Entry,
		"source":  source(result.Search),
	})
}

func (s *Server) handleSEO(c *gin.Context) {
	var req seoRequest
	if !s.bind(c, &req) {
		return
	}

	report, err := s.studio.AnalyzeSEO(req.Content, req.Keyword)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleFormat(c *gin.Context) {
	var req formatRequest
	if !s.bind(c, &req) {
		return
	}

	formats, err := s.studio.FormatForPlatforms(req.Content, req.Targets)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"formats": formats})
}

func (s *Server) handleHashtags(c *gin.Context) {
	var req hashtagRequest
	if !s.bind(c, &req) {
		return
	}

	p := platform.Instagram
	if req.Platform != "" {
		var err error
		if p, err = platform.Parse(req.Platform); err != nil {
			s.respondError(c, err)
			return
		}
	}

	set, err := s.studio.Hashtags(hashtags.Request{Topic: req.Topic, Platform: p, Count: req.Count})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hashtags": set,
		"text":     set.String(),
	})
}

func (s *Server) handleListSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scheduled": s.studio.ScheduledPosts()})
}

func (s *Server) handleSchedule(c *gin.Context) {
	var post store.ScheduledPost
	if !s.bind(c, &post) {
		return
	}

	saved, err := s.studio.SchedulePost(post)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleDeleteSchedule(c *gin.Context) {
	if err := s.studio.DeleteScheduledPost(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, s.studio.Analytics())
}

// handleDownload returns the latest draft as a text attachment.
func (s *Server) handleDownload(c *gin.Context) {
	body, err := s.studio.LastContent()
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+studio.DownloadName(time.Now())+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (s *Server) bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		s.logger.Debug("Rejected request body", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return false
	}
	return true
}

// respondError maps domain errors to status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, store.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNoContent):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func source(outcome search.Outcome) string {
	if outcome.Degraded() {
		return sourceTemplates
	}
	return sourceWeb
}
