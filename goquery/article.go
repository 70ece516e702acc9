// Package goquery provides the parsed document model for article pages.
// It implements scholarslide.ArticleParser on top of goquery's tolerant
// HTML parsing: structured-abstract decoding, citation metadata extraction,
// and abstract-region location all query one shared tree.
package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/scholarslide/scholarslide"
	"golang.org/x/net/html"
)

// abstractMetaSelector locates the embedded machine-readable abstract: a
// meta element whose content attribute holds an HTML-escaped fragment.
const abstractMetaSelector = `meta[name="citation_abstract"]`

// Ensure Parser implements scholarslide.ArticleParser at compile time.
var _ scholarslide.ArticleParser = (*Parser)(nil)

// Parser turns raw markup into an Article.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds the queryable document model. Parsing is best-effort and
// tolerant of unclosed tags; it fails only when the markup cannot be read
// at all.
func (p *Parser) Parse(markup string) (scholarslide.ArticleDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, scholarslide.Errorf(scholarslide.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Article{doc: doc}, nil
}

// Article is a parsed article page. It memoizes the structured abstract so
// repeated field lookups within one conversion reuse a single parse of the
// embedded fragment. Article is not safe for concurrent use; each
// conversion owns its own instance.
type Article struct {
	doc *goquery.Document

	// Memoized structured abstract. The computed flag distinguishes
	// "not parsed yet" from "parsed and legitimately empty".
	abstract         *scholarslide.StructuredAbstract
	abstractComputed bool
}

// StructuredAbstract decodes the embedded abstract into ordered labeled
// sections. A missing or malformed fragment yields an empty abstract,
// never an error; the unstructured fallback path absorbs those cases.
func (a *Article) StructuredAbstract() *scholarslide.StructuredAbstract {
	if a.abstractComputed {
		return a.abstract
	}
	a.abstract = a.parseStructuredAbstract()
	a.abstractComputed = true
	return a.abstract
}

func (a *Article) parseStructuredAbstract() *scholarslide.StructuredAbstract {
	payload, ok := a.doc.Find(abstractMetaSelector).First().Attr("content")
	if !ok || payload == "" {
		return scholarslide.NewStructuredAbstract(nil)
	}

	fragment, err := goquery.NewDocumentFromReader(strings.NewReader(html.UnescapeString(payload)))
	if err != nil {
		return scholarslide.NewStructuredAbstract(nil)
	}

	// Walk headings and paragraphs in document order, maintaining a
	// current-section cursor. A paragraph before any heading has no
	// section to attach to and is dropped.
	var sections []scholarslide.AbstractSection
	current := -1
	fragment.Find("h3, h4, p").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h3", "h4":
			sections = append(sections, scholarslide.AbstractSection{
				Label: strings.TrimSpace(sel.Text()),
			})
			current = len(sections) - 1
		case "p":
			if current < 0 {
				return
			}
			text := joinedText(sel)
			if text == "" {
				return
			}
			if sections[current].Text == "" {
				sections[current].Text = text
			} else {
				sections[current].Text += " " + text
			}
		}
	})

	return scholarslide.NewStructuredAbstract(sections)
}

// AbstractText locates the human-rendered abstract region via selectors.
// Returns "" when no abstract region is found.
func (a *Article) AbstractText() string {
	selectors := []string{
		"div.abstract",
		"section.abstract",
		`div[class*="abstract"]`,
		"#abstract",
		"div.article-body-section:first-of-type",
	}
	for _, selector := range selectors {
		if sel := a.doc.Find(selector).First(); sel.Length() > 0 {
			if text := joinedText(sel); text != "" {
				return text
			}
		}
	}
	return ""
}

// Metadata extracts citation metadata from the page.
func (a *Article) Metadata() scholarslide.Metadata {
	return scholarslide.Metadata{
		Title:   a.title(),
		Authors: a.authors(),
		Date:    a.date(),
		DOI:     a.doi(),
	}
}

// journalSuffix strips "| JAMA ..." and "- JAMA ..." tails from page
// titles.
var journalSuffix = regexp.MustCompile(`\s*[|-]\s*JAMA.*$`)

func (a *Article) title() string {
	selectors := []string{
		"h1.meta-article-title",
		`h1[property="name"]`,
		"h1.article-header__title",
		"h1.content-title",
	}
	for _, selector := range selectors {
		if sel := a.doc.Find(selector).First(); sel.Length() > 0 {
			if title := strings.TrimSpace(sel.Text()); title != "" {
				return title
			}
		}
	}

	if content, ok := a.doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && content != "" {
		return strings.TrimSpace(journalSuffix.ReplaceAllString(content, ""))
	}
	if title := strings.TrimSpace(a.doc.Find("title").First().Text()); title != "" {
		return strings.TrimSpace(journalSuffix.ReplaceAllString(title, ""))
	}

	return scholarslide.NotFoundText(scholarslide.FieldTitle)
}

func (a *Article) authors() string {
	var authors []string

	a.doc.Find(`meta[name="citation_author"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if content, ok := sel.Attr("content"); ok && content != "" {
			authors = append(authors, content)
		}
		return len(authors) < 3
	})

	if len(authors) == 0 {
		for _, selector := range []string{"a.author-name", "span.author-name", ".meta-article-author-list .author"} {
			a.doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				if name := strings.TrimSpace(sel.Text()); name != "" {
					authors = append(authors, name)
				}
				return len(authors) < 3
			})
			if len(authors) > 0 {
				break
			}
		}
	}

	switch {
	case len(authors) >= 3:
		return strings.Join(authors, ", ") + " et al."
	case len(authors) > 0:
		return strings.Join(authors, ", ")
	}
	return scholarslide.NotFoundText(scholarslide.FieldAuthors)
}

func (a *Article) date() string {
	for _, name := range []string{"citation_publication_date", "article:published_time"} {
		if content, ok := a.doc.Find(`meta[name="` + name + `"]`).First().Attr("content"); ok && content != "" {
			return formatDate(content)
		}
	}
	if sel := a.doc.Find("time[datetime]").First(); sel.Length() > 0 {
		if dt, ok := sel.Attr("datetime"); ok && dt != "" {
			return formatDate(dt)
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return formatDate(text)
		}
	}
	if text := strings.TrimSpace(a.doc.Find(".meta-article-date").First().Text()); text != "" {
		return formatDate(text)
	}

	return time.Now().Format("January 2006")
}

// yearMonth extracts a YYYY-MM prefix from dates no layout matches.
var yearMonth = regexp.MustCompile(`(\d{4})-(\d{2})`)

// formatDate normalizes a source date string to "Month Year". Strings that
// cannot be parsed are returned unchanged.
func formatDate(raw string) string {
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.Format("January 2006")
	}
	if m := yearMonth.FindStringSubmatch(raw); m != nil {
		if t, err := time.Parse("2006-01", m[1]+"-"+m[2]); err == nil {
			return t.Format("January 2006")
		}
	}
	return raw
}

var (
	doiPrefix = regexp.MustCompile(`(?i)^doi:\s*`)
	doiURL    = regexp.MustCompile(`https?://doi\.org/`)
)

func (a *Article) doi() string {
	if content, ok := a.doc.Find(`meta[name="citation_doi"]`).First().Attr("content"); ok && content != "" {
		return cleanDOI(content)
	}
	if href, ok := a.doc.Find(`a[href*="doi.org"]`).First().Attr("href"); ok && href != "" {
		return cleanDOI(href)
	}
	if text := strings.TrimSpace(a.doc.Find(".doi").First().Text()); text != "" {
		return cleanDOI(text)
	}
	return scholarslide.NotFoundText(scholarslide.FieldDOI)
}

func cleanDOI(doi string) string {
	doi = doiPrefix.ReplaceAllString(doi, "")
	doi = doiURL.ReplaceAllString(doi, "")
	return strings.TrimSpace(doi)
}

// joinedText collects the text nodes under a selection, trims each, and
// joins them with single spaces.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
