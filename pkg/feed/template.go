package feed

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"text/template"
	"time"
)

// RSSTemplateName is the name of the built-in RSS 2.0 template.
const RSSTemplateName = "rss"

// TemplateGenerator handles template-based feed generation
type TemplateGenerator struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// TemplateData represents the data structure passed to feed templates
type TemplateData struct {
	FeedTitle       string
	FeedLink        string
	FeedDescription string
	Language        string
	SelfLink        string
	Updated         time.Time

	Items []TemplateItem
}

// TemplateItem represents a feed item for template rendering
type TemplateItem struct {
	Title       string
	Link        string
	GUID        string
	Published   time.Time
	Description string
}

// NewTemplateGenerator creates a new template-based feed generator
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{
		templates: make(map[string]*template.Template),
		funcMap:   TemplateFuncs(),
	}
}

// LoadEmbeddedTemplate loads name.tmpl from the override filesystem,
// falling back to the templates compiled into the binary.
func (tg *TemplateGenerator) LoadEmbeddedTemplate(name string) error {
	fileName := name + ".tmpl"

	if override := getTemplateOverrideFS(); override != nil {
		content, err := fs.ReadFile(override, fileName)
		switch {
		case err == nil:
			slog.Debug("Using template override", "name", name)
			return tg.parse(name, fileName, content)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to read template override %s: %w", fileName, err)
		}
	}

	content, err := fs.ReadFile(getTemplateFallbackFS(), fileName)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %s: %w", fileName, err)
	}

	return tg.parse(name, fileName, content)
}

func (tg *TemplateGenerator) parse(name, source string, content []byte) error {
	tmpl, err := template.New(name).Funcs(tg.funcMap).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", source, err)
	}

	tg.templates[name] = tmpl
	slog.Debug("Template loaded successfully", "name", name)
	return nil
}

// GenerateFromTemplate generates a feed using the specified template
func (tg *TemplateGenerator) GenerateFromTemplate(templateName string, data *TemplateData, writer io.Writer) error {
	tmpl, exists := tg.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	slog.Debug("Executing template", "name", templateName, "items", len(data.Items))

	if err := tmpl.Execute(writer, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return nil
}
