package testutil

import (
	"strings"
	"testing"
)

func TestGenerateListingHTML(t *testing.T) {
	page := GenerateListingHTML(ListingPageOptions{
		Class:     "AnimeAltList",
		ListItems: true,
		Links: []ListingLink{
			{Href: "/anime/naruto", Title: "Naruto & Co", Text: "Naruto"},
			{Text: "No link"},
		},
		NextHref: "/anime/page/2",
	})

	for _, want := range []string{
		`<ul class="AnimeAltList">`,
		`<li><a href="/anime/naruto" title="Naruto &amp; Co">Naruto</a></li>`,
		`<li><a>No link</a></li>`,
		`<a class="next" href="/anime/page/2">Next</a>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Expected page to contain %q, got:\n%s", want, page)
		}
	}
}
