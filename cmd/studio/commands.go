package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alkime/studio/internal/draft"
	"github.com/alkime/studio/internal/editor"
	"github.com/alkime/studio/internal/hashtags"
	"github.com/alkime/studio/internal/ideas"
	"github.com/alkime/studio/internal/platform"
	"github.com/alkime/studio/internal/store"
	"github.com/alkime/studio/internal/tui/pacer"
	"github.com/alkime/studio/internal/validation"
	"github.com/alkime/studio/internal/workdir"
)

// IdeasCmd generates ideas for the selected audiences.
type IdeasCmd struct {
	Topic    string `arg:"" help:"Topic to brainstorm"`
	Writer   bool   `flag:"" help:"Ideas for writers"`
	Creator  bool   `flag:"" help:"Ideas for content creators"`
	Business bool   `flag:"" help:"Ideas for businesses"`
}

// Run executes the ideas command.
func (c *IdeasCmd) Run(app *App) error {
	req := ideas.Request{Topic: c.Topic, Writer: c.Writer, Creator: c.Creator, Business: c.Business}
	if err := req.Validate(); err != nil {
		return err
	}

	return app.present(context.Background(), "Generating ideas...", "Looking for current trends", func(ctx context.Context) (pacer.Result, error) {
		result, err := app.Service.GenerateIdeas(ctx, req)
		if err != nil {
			return pacer.Result{}, err
		}
		return pacer.Result{
			Title:    "Ideas for " + strings.TrimSpace(c.Topic),
			Body:     renderIdeas(result.Ideas, result.Search),
			Markdown: true,
		}, nil
	})
}

// DraftCmd composes a markdown draft.
type DraftCmd struct {
	Topic    string   `arg:"" help:"Topic to write about"`
	Type     string   `flag:"" default:"blog post" help:"Content type (blog post, guide, listicle, case study)"`
	Tone     string   `flag:"" default:"professional" enum:"${tones}" help:"Tone (${tones})"`
	Length   string   `flag:"" default:"medium" enum:"short,medium,long" help:"Length (short, medium, long)"`
	Keywords []string `flag:"" sep:"," help:"Comma-separated keywords"`
}

// Run executes the draft command.
func (c *DraftCmd) Run(app *App) error {
	req := draft.Request{
		Topic:       c.Topic,
		ContentType: c.Type,
		Tone:        c.Tone,
		Length:      draft.Length(c.Length),
		Keywords:    c.Keywords,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	subtitle := fmt.Sprintf("Composing about %d words on %s", req.Length.TargetWords(), strings.TrimSpace(c.Topic))

	return app.present(context.Background(), "Writing draft...", subtitle, func(ctx context.Context) (pacer.Result, error) {
		result, err := app.Service.ComposeDraft(ctx, req)
		if err != nil {
			return pacer.Result{}, err
		}
		return pacer.Result{
			Title:    "Sections: " + strings.Join(result.Document.Headings(), " / "),
			Body:     result.Entry.Content,
			Markdown: true,
		}, nil
	})
}

// SEOCmd scores a document. Without a file the latest draft is scored.
type SEOCmd struct {
	File    string `arg:"" optional:"" help:"Markdown file to score, or - for stdin"`
	Keyword string `flag:"" help:"Target keyword"`
}

// Run executes the seo command.
func (c *SEOCmd) Run(app *App) error {
	text, err := readSource(app, c.File)
	if err != nil {
		return err
	}

	return app.present(context.Background(), "Analyzing...", "Scoring structure and keywords", func(context.Context) (pacer.Result, error) {
		report, err := app.Service.AnalyzeSEO(text, c.Keyword)
		if err != nil {
			return pacer.Result{}, err
		}
		return pacer.Result{Title: fmt.Sprintf("SEO score: %d/100", report.Score), Body: renderReport(report)}, nil
	})
}

// FormatCmd reshapes a document for social platforms.
type FormatCmd struct {
	File      string   `arg:"" optional:"" help:"Text file to format, or - for stdin"`
	Platforms []string `flag:"" name:"platform" sep:"," default:"linkedin,twitter,instagram,facebook" help:"Platforms to format for"`
}

// Run executes the format command.
func (c *FormatCmd) Run(app *App) error {
	text, err := readSource(app, c.File)
	if err != nil {
		return err
	}

	targets, err := parseTargets(c.Platforms)
	if err != nil {
		return err
	}

	formats, err := app.Service.FormatForPlatforms(text, targets)
	if err != nil {
		return err
	}

	fmt.Fprint(app.Out, renderFormats(formats))

	return nil
}

// HashtagsCmd generates hashtags.
type HashtagsCmd struct {
	Topic    string `arg:"" help:"Topic to tag"`
	Platform string `flag:"" default:"instagram" help:"Target platform"`
	Count    int    `flag:"" default:"10" help:"Number of hashtags (1-30)"`
}

// Run executes the hashtags command.
func (c *HashtagsCmd) Run(app *App) error {
	p, err := platform.Parse(c.Platform)
	if err != nil {
		return err
	}

	set, err := app.Service.Hashtags(hashtags.Request{Topic: c.Topic, Platform: p, Count: c.Count})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.Out, set.String())

	return nil
}

// ScheduleCmd groups calendar subcommands.
type ScheduleCmd struct {
	Add    ScheduleAddCmd    `cmd:"" help:"Schedule a post"`
	List   ScheduleListCmd   `cmd:"" default:"1" help:"List scheduled posts"`
	Delete ScheduleDeleteCmd `cmd:"" help:"Delete a scheduled post"`
}

// ScheduleAddCmd adds a post to the calendar.
type ScheduleAddCmd struct {
	Title    string `arg:"" help:"Post title"`
	Platform string `flag:"" default:"linkedin" help:"Platform to publish on"`
	Date     string `flag:"" required:"" help:"Publish date (YYYY-MM-DD)"`
	Time     string `flag:"" required:"" help:"Publish time (HH:MM)"`
}

// Run executes the schedule add command.
func (c *ScheduleAddCmd) Run(app *App) error {
	p, err := platform.Parse(c.Platform)
	if err != nil {
		return err
	}

	post, err := app.Service.SchedulePost(store.ScheduledPost{
		Title:    c.Title,
		Platform: string(p),
		Date:     c.Date,
		Time:     c.Time,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "Scheduled %q on %s for %s at %s (id %s)\n", post.Title, post.Platform, post.Date, post.Time, post.ID)

	return nil
}

// ScheduleListCmd prints the calendar.
type ScheduleListCmd struct{}

// Run executes the schedule list command.
//
//nolint:unparam // error return required by Kong interface
func (c *ScheduleListCmd) Run(app *App) error {
	fmt.Fprint(app.Out, renderSchedule(app.Service.ScheduledPosts()))
	return nil
}

// ScheduleDeleteCmd removes a post.
type ScheduleDeleteCmd struct {
	ID string `arg:"" help:"Post id"`
}

// Run executes the schedule delete command.
func (c *ScheduleDeleteCmd) Run(app *App) error {
	if err := app.Service.DeleteScheduledPost(c.ID); err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "Deleted %s\n", c.ID)

	return nil
}

// StatsCmd prints the analytics counters.
type StatsCmd struct{}

// Run executes the stats command.
//
//nolint:unparam // error return required by Kong interface
func (c *StatsCmd) Run(app *App) error {
	fmt.Fprint(app.Out, renderAnalytics(app.Service.Analytics()))
	return nil
}

// DownloadCmd writes the latest draft to disk.
type DownloadCmd struct {
	Dir  string `flag:"" help:"Output directory (default: <data dir>/downloads)"`
	Edit bool   `flag:"" help:"Open the saved file in $STUDIO_EDITOR or $EDITOR"`
}

// Run executes the download command.
func (c *DownloadCmd) Run(app *App) error {
	dir := c.Dir
	if dir == "" {
		dir = workdir.DownloadsPath(app.DataDir)
	}

	path, err := app.Service.Download(dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "Saved %s\n", path)

	if c.Edit {
		return editor.Open(path, app.Logger)
	}

	return nil
}

// readSource reads name, stdin for "-", or the latest draft when name is empty.
func readSource(app *App, name string) (string, error) {
	switch name {
	case "":
		return app.Service.LastContent()
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		return string(data), nil
	}
}

func parseTargets(names []string) (platform.Targets, error) {
	var targets platform.Targets
	for _, name := range names {
		p, err := platform.Parse(name)
		if err != nil {
			return platform.Targets{}, err
		}
		switch p {
		case platform.LinkedIn:
			targets.LinkedIn = true
		case platform.Twitter:
			targets.Twitter = true
		case platform.Instagram:
			targets.Instagram = true
		case platform.Facebook:
			targets.Facebook = true
		case platform.TikTok:
			return platform.Targets{}, validation.New("platform", fmt.Sprintf("no formatter for %s", p))
		}
	}
	return targets, nil
}
