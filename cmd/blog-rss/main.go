// Package main provides the CLI entry point for blog-rss.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/blog-rss/internal/config"
	"github.com/lepinkainen/blog-rss/pkg/feed"
	"github.com/lepinkainen/blog-rss/pkg/filesystem"
	"github.com/lepinkainen/blog-rss/pkg/preview"
	"github.com/lepinkainen/blog-rss/pkg/providers"

	// Import post sources to trigger init() self-registration
	_ "github.com/lepinkainen/blog-rss/internal/markdown"
)

// CLI structure
type CLI struct {
	Config config.File `help:"Configuration file path" default:"blog-rss.yaml"`
	Debug  bool        `help:"Enable debug logging" default:"false"`

	Generate struct {
		BlogDir string      `arg:"" help:"Directory containing the blog posts" type:"path"`
		Outfile string      `help:"Output file path, - for stdout" short:"o" default:"-"`
		Feed    config.Feed `embed:""`
	} `cmd:"" default:"withargs" help:"Print the RSS feed for a directory of blog posts (default command)."`

	Preview struct {
		BlogDir string      `arg:"" help:"Directory containing the blog posts" type:"path"`
		Index   int         `help:"Output XML for specific item index (0-based) to stdout" default:"-1"`
		Feed    config.Feed `embed:""`
	} `cmd:"" help:"Preview feed posts interactively."`
}

// now supplies the feed build time.
var now = time.Now

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("Ignoring environment file", "error", err)
	}

	var cli CLI
	parser, err := newParser(&cli, os.Stdout, os.Stderr)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	// Configure logging level based on debug flag
	if cli.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	if err := run(ctx, &cli, os.Stdout); err != nil {
		var configErr *config.ConfigurationError
		if errors.As(err, &configErr) {
			_ = ctx.PrintUsage(true)
			ctx.FatalIfErrorf(err)
		}

		slog.Error("Failed to generate feed", "error", err)
		os.Exit(1)
	}
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("blog-rss"),
		kong.Description("Generate an RSS 2.0 feed from a directory of markdown blog posts."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		config.Vars(),
	)
}

// run executes the selected command. Output is written to stdout only when the
// whole feed rendered successfully.
func run(ctx *kong.Context, cli *CLI, stdout io.Writer) error {
	switch ctx.Selected().Name {
	case "generate":
		return generateFeed(cli.Generate.BlogDir, &cli.Generate.Feed, cli.Generate.Outfile, stdout)
	case "preview":
		return previewFeed(cli.Preview.BlogDir, &cli.Preview.Feed, cli.Preview.Index, stdout)
	default:
		panic(ctx.Command())
	}
}

// generateFeed renders the feed for blogDir and writes it to outfile
func generateFeed(blogDir string, opts *config.Feed, outfile string, stdout io.Writer) error {
	posts, generator, err := loadFeed(blogDir, opts)
	if err != nil {
		return err
	}

	out, err := generator.Render(posts)
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}

	if err := filesystem.WriteOutput(outfile, out, stdout); err != nil {
		return err
	}

	slog.Debug("Generated feed", "format", generator.Config.Format, "posts", len(generator.Limit(posts)), "outfile", outfile)
	return nil
}

// previewFeed shows the posts that would be in the feed
func previewFeed(blogDir string, opts *config.Feed, index int, stdout io.Writer) error {
	posts, generator, err := loadFeed(blogDir, opts)
	if err != nil {
		return err
	}

	// If index is specified, output XML directly to stdout
	if index >= 0 {
		return preview.PrintItem(posts, generator, index, stdout)
	}

	return preview.Run(posts, generator, stdout)
}

// loadFeed validates the settings, reads the posts and prepares a generator
func loadFeed(blogDir string, opts *config.Feed) ([]providers.Post, *feed.Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	feedConfig, err := opts.FeedConfig()
	if err != nil {
		return nil, nil, err
	}

	sourceConfig, err := opts.SourceConfig()
	if err != nil {
		return nil, nil, err
	}

	if opts.TemplateDir != "" {
		feed.SetTemplateOverrideFS(os.DirFS(opts.TemplateDir))
	}

	slog.Debug("Reading posts", "source", opts.Source, "dir", blogDir)

	posts, err := providers.FetchPosts(opts.Source, sourceConfig, blogDir)
	if err != nil {
		return nil, nil, err
	}

	generator := feed.NewGenerator(feedConfig)
	generator.Now = now

	return posts, generator, nil
}
