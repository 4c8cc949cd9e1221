package parser

import "io"

// PageParser parses one page of a paginated listing and reports the next page, if any.
type PageParser[T any] interface {
	ParsePage(body io.Reader, pageURL string) (Page[T], error)
}

// Page is one parsed listing page.
type Page[T any] struct {
	Items []T
	Next  string // absolute URL of the following page, empty on the last page
}
