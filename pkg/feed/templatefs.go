package feed

import (
	"io/fs"

	"github.com/lepinkainen/blog-rss/templates"
)

var (
	// templateOverrideFS points at a user-provided template directory; nil until --template-dir is set.
	templateOverrideFS fs.FS
	// templateFallbackFS is the embedded filesystem baked into the binary.
	templateFallbackFS fs.FS = templates.EmbeddedTemplates
)

// SetTemplateOverrideFS switches the primary filesystem used when loading templates.
// A nil filesystem disables overrides.
func SetTemplateOverrideFS(f fs.FS) {
	templateOverrideFS = f
}

func getTemplateOverrideFS() fs.FS {
	return templateOverrideFS
}

func getTemplateFallbackFS() fs.FS {
	return templateFallbackFS
}
