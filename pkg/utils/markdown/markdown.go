// Package markdown renders video descriptions into sanitized HTML for cards.
package markdown

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"

	"thirdcoast.systems/cardfeed/pkg/utils/format"
)

var (
	bfRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsDashes,
	})
	// Descriptions are mostly plain text, so single newlines are kept as breaks.
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.Autolink | blackfriday.Strikethrough | blackfriday.HardLineBreak | blackfriday.NoEmptyLineBeforeBlock
	policy       = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "em", "strong", "del", "code", "ul", "ol", "li")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Description is a video description with lazily rendered forms.
type Description struct {
	Source string

	renderedHTML *template.HTML
	renderedText *string
}

func NewDescription(source string) *Description {
	return &Description{Source: source}
}

func (d *Description) run() []byte {
	return blackfriday.Run([]byte(strings.ReplaceAll(d.Source, "\r\n", "\n")),
		blackfriday.WithRenderer(bfRenderer),
		blackfriday.WithExtensions(bfExtensions),
	)
}

// HTML converts the description into sanitized HTML with links made clickable.
func (d *Description) HTML() template.HTML {
	if d.renderedHTML != nil {
		return *d.renderedHTML
	}
	var out template.HTML
	if strings.TrimSpace(d.Source) != "" {
		out = template.HTML(bytes.TrimSpace(policy.SanitizeBytes(d.run())))
	}
	d.renderedHTML = &out
	return out
}

// PlainText strips all markup. Entities are decoded so the result can be
// escaped once by the caller.
func (d *Description) PlainText() string {
	if d.renderedText != nil {
		return *d.renderedText
	}
	var out string
	if strings.TrimSpace(d.Source) != "" {
		stripped := bluemonday.StrictPolicy().SanitizeBytes(d.run())
		out = html.UnescapeString(strings.Join(strings.Fields(string(stripped)), " "))
	}
	d.renderedText = &out
	return out
}

// Summary is the plain text cut to max runes.
func (d *Description) Summary(max int) string {
	return format.Truncate(d.PlainText(), max)
}
