package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alkime/studio/internal/config"
	"github.com/alkime/studio/internal/draft"
	"github.com/alkime/studio/internal/ideas"
	"github.com/alkime/studio/internal/logger"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/store"
	"github.com/alkime/studio/internal/studio"
	"github.com/alkime/studio/internal/tui/pacer"
	"github.com/alkime/studio/internal/workdir"
)

// CLI defines the studio command structure.
type CLI struct {
	DataDir string `flag:"" env:"STUDIO_DATA_DIR" help:"Directory holding studio.json (default: ~/Documents/Alkime/Studio)"`
	Plain   bool   `flag:"" help:"Print results without the terminal UI"`

	Ideas    IdeasCmd    `cmd:"" help:"Generate content ideas for a topic"`
	Draft    DraftCmd    `cmd:"" help:"Compose a markdown draft"`
	SEO      SEOCmd      `cmd:"" name:"seo" help:"Score a document for SEO"`
	Format   FormatCmd   `cmd:"" help:"Reformat a document for social platforms"`
	Hashtags HashtagsCmd `cmd:"" help:"Generate hashtags for a topic"`
	Schedule ScheduleCmd `cmd:"" help:"Manage the content calendar"`
	Stats    StatsCmd    `cmd:"" help:"Show usage counters"`
	Download DownloadCmd `cmd:"" help:"Save the latest draft as a text file"`
}

// App carries what every command needs.
type App struct {
	Config  *config.Config
	Service *studio.Service
	Logger  *slog.Logger
	DataDir string
	Plain   bool
	Out     io.Writer
}

// present runs job behind the pacing spinner, or directly in plain mode.
func (a *App) present(ctx context.Context, title, subtitle string, job pacer.Job) error {
	if !a.Plain {
		_, err := pacer.Run(ctx, title, subtitle, a.Config.PacingDelay, job)
		return err
	}

	result, err := job(ctx)
	if err != nil {
		return err
	}
	if result.Title != "" {
		fmt.Fprintf(a.Out, "%s\n\n", result.Title)
	}
	fmt.Fprintln(a.Out, result.Body)

	return nil
}

func newApp(cli *CLI, cfg *config.Config, out io.Writer) (*App, error) {
	log := logger.SetupCLILogger(cfg, os.Stderr)
	slog.SetDefault(log)

	dir, err := workdir.Resolve(cli.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := workdir.Prep(dir); err != nil {
		return nil, err
	}

	st, err := store.Open(workdir.StorePath(dir), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	client := search.NewClient(cfg.SearchEndpoint, cfg.SearchTimeout, log)
	svc := studio.New(st, client, ideas.NewEngine(nil), draft.NewComposer(), log)

	return &App{
		Config:  cfg,
		Service: svc,
		Logger:  log,
		DataDir: dir,
		Plain:   cli.Plain,
		Out:     out,
	}, nil
}

// vars are interpolated into the CLI's struct tags.
func vars() kong.Vars {
	return kong.Vars{"tones": strings.Join(draft.Tones(), ",")}
}

func main() {
	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("studio"),
		vars(),
		kong.Description("Content studio: ideas, drafts, SEO, formatting, hashtags and scheduling."),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig()
	ctx.FatalIfErrorf(err)

	app, err := newApp(cli, cfg, os.Stdout)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
