package models

// StreamResult holds either a value or an error from a streaming operation
type StreamResult[T any] struct {
	Value T
	Err   error
}

// ScrapedItem is one listing link extracted by a collector.
type ScrapedItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Lang   string `json:"lang"`
	Source string `json:"source"`
}

// Raw converts the item into the stored record shape.
func (s ScrapedItem) Raw() RawRecord {
	return RawRecord{
		"title":  s.Title,
		"url":    s.URL,
		"lang":   s.Lang,
		"source": s.Source,
	}
}
