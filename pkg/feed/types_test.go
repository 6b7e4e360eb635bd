package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestConfig_Links(t *testing.T) {
	config := Config{
		URL:      "https://example.com",
		BlogPath: "/blog",
		FeedPath: "/blog/feed.xml",
	}

	if got := config.ChannelLink(); got != "https://example.com/blog" {
		t.Errorf("ChannelLink() = %q", got)
	}
	if got := config.SelfLink(); got != "https://example.com/blog/feed.xml" {
		t.Errorf("SelfLink() = %q", got)
	}
	// Plain concatenation, no slash normalisation
	if got := config.ItemLink("posts/a"); got != "https://example.composts/a" {
		t.Errorf("ItemLink() = %q", got)
	}
}

func TestConfig_Location(t *testing.T) {
	if (Config{}).location() != time.Local {
		t.Errorf("nil location should default to time.Local")
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	if (Config{Location: tokyo}).location() != tokyo {
		t.Errorf("configured location should be used")
	}
}

func TestParseFeedType(t *testing.T) {
	tests := []struct {
		input   string
		want    FeedType
		wantErr bool
	}{
		{input: "", want: RSS},
		{input: "rss", want: RSS},
		{input: "atom", want: Atom},
		{input: "json", want: JSON},
		{input: "RSS", wantErr: true},
		{input: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFeedType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFeedType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFeedType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no special characters", input: "Hello World", expected: "Hello World"},
		{name: "ampersand", input: "Tom & Jerry", expected: "Tom &amp; Jerry"},
		{name: "angle brackets", input: "<script>", expected: "&lt;script&gt;"},
		{name: "quotes", input: `"double" 'single'`, expected: "&quot;double&quot; &apos;single&apos;"},
		{name: "existing entity is escaped again", input: "&amp;", expected: "&amp;amp;"},
		{name: "unicode untouched", input: "héllo wörld", expected: "héllo wörld"},
		{name: "empty", input: "", expected: ""},
		{name: "whitespace kept", input: "a\tb\nc", expected: "a\tb\nc"},
		{name: "form feed replaced", input: "Page\fbreak", expected: "Page\uFFFDbreak"},
		{name: "nul and escape replaced", input: "a\x00b\x1b", expected: "a\uFFFDb\uFFFD"},
		{name: "non-characters replaced", input: "x\uFFFEy", expected: "x\uFFFDy"},
		{name: "invalid utf-8 replaced", input: "caf\xe9", expected: "caf\uFFFD"},
		{name: "invalid utf-8 next to special", input: "\xff&", expected: "\uFFFD&amp;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := EscapeXML(tt.input); result != tt.expected {
				t.Errorf("EscapeXML(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEscapeXML_RoundTrip(t *testing.T) {
	inputs := []string{
		`<a href="x">&amp; it's</a>`,
		"5 > 3 && 2 < 4",
		"&lt;already escaped&gt;",
	}

	for _, input := range inputs {
		var out struct {
			Text string `xml:",chardata"`
		}
		doc := "<t>" + EscapeXML(input) + "</t>"
		if err := xml.NewDecoder(strings.NewReader(doc)).Decode(&out); err != nil {
			t.Fatalf("escaped %q is not well-formed: %v", input, err)
		}
		if out.Text != input {
			t.Errorf("round trip of %q gave %q", input, out.Text)
		}
	}
}

func TestEscapeXML_AlwaysWellFormed(t *testing.T) {
	inputs := []string{
		"Page\fbreak",
		"caf\xe9",
		"\x00\x01\x08\x0b\x1f",
		"bell\a & <tag>",
		"\xed\xa0\x80 surrogate",
		"\uFFFF\uFFFE",
		string([]byte{0xc3}),
	}

	for _, input := range inputs {
		escaped := EscapeXML(input)
		if !utf8.ValidString(escaped) {
			t.Errorf("EscapeXML(%q) = %q is not valid UTF-8", input, escaped)
		}

		var out struct {
			Text string `xml:",chardata"`
		}
		doc := "<t>" + escaped + "</t>"
		if err := xml.NewDecoder(strings.NewReader(doc)).Decode(&out); err != nil {
			t.Errorf("EscapeXML(%q) is not well-formed: %v", input, err)
		}
	}
}

func TestFormatRFC822(t *testing.T) {
	date := time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("MST", -7*60*60))

	if got := FormatRFC822(date); got != "Mon, 02 Jan 2006 15:04:05 -0700" {
		t.Errorf("FormatRFC822() = %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{input: "short", maxLen: 10, want: "short"},
		{input: "exactly10!", maxLen: 10, want: "exactly10!"},
		{input: "this is too long", maxLen: 10, want: "this is..."},
		{input: "abcdef", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		if got := truncateText(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateText(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}
