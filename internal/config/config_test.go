package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/blog-rss/pkg/feed"
	"github.com/lepinkainen/blog-rss/pkg/testutil"
)

type testCLI struct {
	Config File `default:"blog-rss.yaml"`
	Feed   Feed `embed:""`
}

func parseTestCLI(t *testing.T, args ...string) (*testCLI, error) {
	t.Helper()

	var cli testCLI
	parser, err := kong.New(&cli, kong.Name("blog-rss"), Vars())
	if err != nil {
		t.Fatalf("kong.New() error: %v", err)
	}

	_, err = parser.Parse(args)
	return &cli, err
}

func TestKey(t *testing.T) {
	tests := map[string]string{
		"title":        "title",
		"blog-path":    "blog_path",
		"template-dir": "template_dir",
	}

	for flag, want := range tests {
		if got := Key(flag); got != want {
			t.Errorf("Key(%q) = %q, want %q", flag, got, want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("BLOG_RSS_TITLE", "From env")

	v, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := v.GetString("title"); got != "From env" {
		t.Errorf("title = %q, want %q", got, "From env")
	}
	if v.IsSet("url") {
		t.Errorf("url should not be set")
	}
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"blog-rss.yaml": "title: From file\nblog_path: /blog/\nlimit: 5\n",
	})
	t.Setenv("BLOG_RSS_TITLE", "From env")

	v, err := Load(filepath.Join(dir, "blog-rss.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := v.GetString("title"); got != "From env" {
		t.Errorf("title = %q, want the environment to win", got)
	}
	if got := v.GetString("blog_path"); got != "/blog/" {
		t.Errorf("blog_path = %q, want %q", got, "/blog/")
	}
	if got := v.GetInt("limit"); got != 5 {
		t.Errorf("limit = %d, want 5", got)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"bad.yaml": "title: [unclosed\n",
	})

	if _, err := Load(filepath.Join(dir, "bad.yaml")); err == nil {
		t.Errorf("expected error for invalid YAML")
	}
}

func TestResolver_Precedence(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"site.yaml": `title: File title
description: File description
url: https://file.example.com
blog_path: /blog/
feed_path: /blog/rss.xml
limit: 5
drafts: true
`,
	})
	t.Setenv("BLOG_RSS_DESCRIPTION", "Env description")
	t.Setenv("BLOG_RSS_LIMIT", "7")

	cli, err := parseTestCLI(t, "--config", filepath.Join(dir, "site.yaml"), "--limit", "3")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	got := cli.Feed
	if got.Title != "File title" {
		t.Errorf("Title = %q, want value from file", got.Title)
	}
	if got.Description != "Env description" {
		t.Errorf("Description = %q, want value from environment", got.Description)
	}
	if got.Limit != 3 {
		t.Errorf("Limit = %d, want the flag to win", got.Limit)
	}
	if !got.Drafts {
		t.Errorf("Drafts should be read from the file")
	}
	if got.BlogPath != "/blog/" || got.FeedPath != "/blog/rss.xml" {
		t.Errorf("paths = %q %q", got.BlogPath, got.FeedPath)
	}
	if got.Format != "rss" || got.Source != "markdown" {
		t.Errorf("defaults not applied: format=%q source=%q", got.Format, got.Source)
	}
}

func TestResolver_DefaultConfigFile(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		DefaultFile: "title: Default file\n",
	})
	t.Chdir(dir)

	cli, err := parseTestCLI(t)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cli.Feed.Title != "Default file" {
		t.Errorf("Title = %q, want value from %s", cli.Feed.Title, DefaultFile)
	}
}

func TestResolver_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cli, err := parseTestCLI(t, "--title", "Flag title")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cli.Feed.Title != "Flag title" || cli.Feed.Limit != feed.DefaultLimit {
		t.Errorf("unexpected values: %+v", cli.Feed)
	}
}

func TestResolver_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BLOG_RSS_LIMIT", "many")

	if _, err := parseTestCLI(t); err == nil {
		t.Errorf("expected error for a non-numeric limit")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		".env": "BLOG_RSS_DOTENV_TITLE=From dotenv\nBLOG_RSS_DOTENV_KEEP=From dotenv\n",
	})

	// Registered so the variables are restored after the test
	t.Setenv("BLOG_RSS_DOTENV_TITLE", "")
	os.Unsetenv("BLOG_RSS_DOTENV_TITLE")
	t.Setenv("BLOG_RSS_DOTENV_KEEP", "From environment")

	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}

	if got := os.Getenv("BLOG_RSS_DOTENV_TITLE"); got != "From dotenv" {
		t.Errorf("BLOG_RSS_DOTENV_TITLE = %q, want %q", got, "From dotenv")
	}
	if got := os.Getenv("BLOG_RSS_DOTENV_KEEP"); got != "From environment" {
		t.Errorf("BLOG_RSS_DOTENV_KEEP = %q, existing variables must not be overridden", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
