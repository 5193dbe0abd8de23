// Package format renders a clipping as text for copy-paste: plain indented
// text, chat markup, simple HTML, or Telegram HTML.
package format

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/deusflow/clipping/internal/news"
)

// Clipping is everything a formatter needs.
type Clipping struct {
	Title    string
	Label    string // reference date or window label
	Sections Sections
	Buckets  []Section
}

type Sections struct {
	Organization      string
	General           string
	OrganizationEmpty string
	GeneralEmpty      string
}

// Section is one bucket with its heading and its no-articles line.
type Section struct {
	Heading string
	Empty   string
	Groups  news.Groups
}

// New builds the two-bucket clipping from a pipeline result.
func New(title, label string, s Sections, res news.Result) Clipping {
	return Clipping{
		Title:    title,
		Label:    label,
		Sections: s,
		Buckets: []Section{
			{Heading: s.Organization, Empty: s.OrganizationEmpty, Groups: res.Organization},
			{Heading: s.General, Empty: s.GeneralEmpty, Groups: res.General},
		},
	}
}

// Formatter renders a clipping.
type Formatter func(Clipping) string

var formatters = map[string]Formatter{
	"plain":    Plain,
	"chat":     Chat,
	"html":     HTML,
	"telegram": Telegram,
}

// Lookup returns the formatter registered under name.
func Lookup(name string) (Formatter, error) {
	f, ok := formatters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

func Names() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Plain renders indented text.
func Plain(c Clipping) string {
	var b strings.Builder
	b.WriteString(c.Title + "\n")
	b.WriteString(c.Label + "\n")
	for _, sec := range c.Buckets {
		b.WriteString("\n" + strings.ToUpper(sec.Heading) + "\n\n")
		if sec.Groups.Len() == 0 {
			b.WriteString("    " + sec.Empty + "\n")
			continue
		}
		for _, outlet := range sec.Groups.Outlets() {
			b.WriteString(outlet + "\n")
			for _, a := range sec.Groups[outlet] {
				b.WriteString("    " + a.Title + "\n")
				b.WriteString("    " + a.Link + "\n")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Chat renders WhatsApp-style markup: *bold* outlets, _italic_ sections.
func Chat(c Clipping) string {
	var b strings.Builder
	b.WriteString("*" + c.Title + "*\n")
	b.WriteString("_" + c.Label + "_\n")
	for _, sec := range c.Buckets {
		b.WriteString("\n_" + sec.Heading + "_\n\n")
		if sec.Groups.Len() == 0 {
			b.WriteString(sec.Empty + "\n")
			continue
		}
		for _, outlet := range sec.Groups.Outlets() {
			b.WriteString("*" + outlet + "*\n")
			for _, a := range sec.Groups[outlet] {
				b.WriteString(a.Title + "\n")
				b.WriteString(a.Link + "\n")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// HTML renders inline markup for pasting into an email or web editor.
func HTML(c Clipping) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p><b>%s</b><br><i>%s</i></p>\n", esc(c.Title), esc(c.Label)))
	for _, sec := range c.Buckets {
		b.WriteString(fmt.Sprintf("<p><b><i>%s</i></b></p>\n", esc(sec.Heading)))
		if sec.Groups.Len() == 0 {
			b.WriteString(fmt.Sprintf("<p>%s</p>\n", esc(sec.Empty)))
			continue
		}
		for _, outlet := range sec.Groups.Outlets() {
			b.WriteString(fmt.Sprintf("<p><b>%s</b>", esc(outlet)))
			for _, a := range sec.Groups[outlet] {
				b.WriteString(fmt.Sprintf("<br><a href=\"%s\">%s</a>", esc(a.Link), esc(a.Title)))
			}
			b.WriteString("</p>\n")
		}
	}
	return b.String()
}

// Telegram renders the subset of HTML the Bot API accepts (no <p>/<br>).
func Telegram(c Clipping) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b>\n<i>%s</i>\n", esc(c.Title), esc(c.Label)))
	for _, sec := range c.Buckets {
		b.WriteString(fmt.Sprintf("\n<b><i>%s</i></b>\n\n", esc(sec.Heading)))
		if sec.Groups.Len() == 0 {
			b.WriteString(esc(sec.Empty) + "\n")
			continue
		}
		for _, outlet := range sec.Groups.Outlets() {
			b.WriteString(fmt.Sprintf("<b>%s</b>\n", esc(outlet)))
			for _, a := range sec.Groups[outlet] {
				b.WriteString(fmt.Sprintf("• <a href=\"%s\">%s</a>\n", esc(a.Link), esc(a.Title)))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func esc(s string) string { return html.EscapeString(s) }
