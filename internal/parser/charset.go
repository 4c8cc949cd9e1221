package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts a listing page to UTF-8. The encoding is taken from
// contentType when it names a charset, otherwise from the page's own meta
// tags, a BOM, or content sniffing. Source sites serving Latin-1 or
// Windows-1252 would otherwise produce mangled titles.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
