package feed

import (
	"strings"
	"text/template"
	"time"
	"unicode/utf8"
)

// TemplateFuncs returns a map of template helper functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"xmlEscape":   EscapeXML,
		"rfc822":      FormatRFC822,
		"formatTime":  formatTime,
		"joinStrings": strings.Join,
		"truncate":    truncateText,
	}
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes the five XML special characters.
// Existing entities are escaped again so text survives a parse round trip unchanged.
// Invalid UTF-8 and characters outside the XML character range become U+FFFD.
func EscapeXML(s string) string {
	return xmlReplacer.Replace(strings.Map(xmlChar, s))
}

// xmlChar maps r to itself when XML 1.0 allows it in character data.
// strings.Map passes each invalid UTF-8 byte as utf8.RuneError.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r',
		r >= 0x20 && r <= 0xD7FF,
		r >= 0xE000 && r <= 0xFFFD,
		r >= 0x10000 && r <= utf8.MaxRune:
		return r
	}
	return utf8.RuneError
}

// FormatRFC822 formats t as an RFC 822 date with a numeric zone,
// e.g. "Mon, 02 Jan 2006 15:04:05 -0700".
func FormatRFC822(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

// formatTime formats time in RFC3339 format
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// truncateText truncates text to a maximum length
func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
