package parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/models"
)

// ListingParser extracts anime links from a source site's listing page.
type ListingParser struct {
	source config.SourceConfig
	base   *url.URL
}

// NewListingParser creates a parser for one configured source.
func NewListingParser(source config.SourceConfig) (*ListingParser, error) {
	base, err := url.Parse(source.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL for source %s: %w", source.Name, err)
	}
	if source.ItemSelector == "" {
		return nil, fmt.Errorf("source %s has no item selector", source.Name)
	}
	return &ListingParser{source: source, base: base}, nil
}

// ParsePage extracts the items of the page fetched from pageURL and the link to the next page.
func (p *ListingParser) ParsePage(body io.Reader, pageURL string) (Page[models.ScrapedItem], error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Str("source", p.source.Name).Msg("Failed to parse HTML document")
		return Page[models.ScrapedItem]{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	pageBase := p.base
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		pageBase = u
	}

	items := make([]models.ScrapedItem, 0)
	doc.Find(p.source.ItemSelector).Each(func(i int, link *goquery.Selection) {
		item, ok := p.extractItem(link, pageBase)
		if !ok {
			logger.Debug().Str("source", p.source.Name).Int("link", i).Msg("Skipping listing link without href")
			return
		}
		items = append(items, item)
	})

	page := Page[models.ScrapedItem]{Items: items}
	if p.source.NextSelector != "" {
		if href, ok := doc.Find(p.source.NextSelector).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			page.Next = resolve(pageBase, href)
		}
	}

	logger.Debug().
		Str("source", p.source.Name).
		Str("page", pageURL).
		Int("items", len(items)).
		Str("next", page.Next).
		Msg("Parsed listing page")
	return page, nil
}

// extractItem prefers the title attribute and falls back to the link text.
func (p *ListingParser) extractItem(link *goquery.Selection, pageBase *url.URL) (models.ScrapedItem, bool) {
	href, exists := link.Attr("href")
	href = strings.TrimSpace(href)
	if !exists || href == "" || strings.HasPrefix(href, "#") {
		return models.ScrapedItem{}, false
	}

	title, _ := link.Attr("title")
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.Join(strings.Fields(link.Text()), " ")
	}

	return models.ScrapedItem{
		Title:  title,
		URL:    resolve(pageBase, href),
		Lang:   p.source.Lang,
		Source: p.source.Name,
	}, true
}

func resolve(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return strings.TrimRight(base.String(), "/") + href
	}
	return base.ResolveReference(ref).String()
}
