package models

// LocatorKind tells which lookup a decoded identifier needs.
type LocatorKind int

const (
	LocatorUnrecognized LocatorKind = iota
	LocatorSeries
	LocatorPositional
	LocatorContent
)

// String returns a short label, used for logs and metric labels.
func (k LocatorKind) String() string {
	switch k {
	case LocatorSeries:
		return "series"
	case LocatorPositional:
		return "positional"
	case LocatorContent:
		return "content"
	default:
		return "unrecognized"
	}
}

// Locator is the structured form of a stable identifier.
type Locator struct {
	Kind LocatorKind
	ID   string // identifier as received

	SeriesKey string
	Season    int
	Episode   int

	Index int

	ContentKey string
}
