package testutil

import (
	"fmt"
	"html"
	"strings"
)

// ListingLink is one anchor of a generated listing page.
type ListingLink struct {
	Href  string // omitted from the anchor when empty
	Title string // omitted from the anchor when empty
	Text  string
}

// ListingPageOptions describes a generated listing page.
type ListingPageOptions struct {
	Class     string // class of the element wrapping the links
	ListItems bool   // render <ul><li> instead of a <div>
	Links     []ListingLink
	NextHref  string // optional pagination link with class "next"
}

// GenerateListingHTML renders a minimal listing page shaped like the anime
// index pages the collector scrapes.
func GenerateListingHTML(opts ListingPageOptions) string {
	var sb strings.Builder

	sb.WriteString("<html>\n<body>\n")
	if opts.ListItems {
		fmt.Fprintf(&sb, "<ul class=%q>\n", opts.Class)
	} else {
		fmt.Fprintf(&sb, "<div class=%q>\n", opts.Class)
	}

	for _, link := range opts.Links {
		anchor := generateAnchor(link)
		if opts.ListItems {
			anchor = "<li>" + anchor + "</li>"
		}
		sb.WriteString("\t" + anchor + "\n")
	}

	if opts.ListItems {
		sb.WriteString("</ul>\n")
	} else {
		sb.WriteString("</div>\n")
	}
	if opts.NextHref != "" {
		fmt.Fprintf(&sb, "<a class=\"next\" href=%q>Next</a>\n", opts.NextHref)
	}
	sb.WriteString("</body>\n</html>")

	return sb.String()
}

func generateAnchor(link ListingLink) string {
	var attrs strings.Builder
	if link.Href != "" {
		fmt.Fprintf(&attrs, " href=\"%s\"", html.EscapeString(link.Href))
	}
	if link.Title != "" {
		fmt.Fprintf(&attrs, " title=\"%s\"", html.EscapeString(link.Title))
	}
	return "<a" + attrs.String() + ">" + html.EscapeString(link.Text) + "</a>"
}
