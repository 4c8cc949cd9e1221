package models

// Manifest describes the addon capabilities to the Stremio client.
type Manifest struct {
	ID          string              `json:"id"`
	Version     string              `json:"version"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Resources   []string            `json:"resources"`
	Types       []string            `json:"types"`
	Catalogs    []CatalogDefinition `json:"catalogs"`
	IDPrefixes  []string            `json:"idPrefixes,omitempty"`
	Background  string              `json:"background,omitempty"`
	Logo        string              `json:"logo,omitempty"`
}

// CatalogDefinition declares one browsable catalog.
type CatalogDefinition struct {
	Type  string         `json:"type"`
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Extra []CatalogExtra `json:"extra,omitempty"`
}

// CatalogExtra declares an optional or required catalog parameter.
type CatalogExtra struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired"`
}

// CatalogEntry is the meta preview of one record in a catalog response.
type CatalogEntry struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Name        string      `json:"name"`
	Poster      string      `json:"poster"`
	Background  string      `json:"background"`
	Description string      `json:"description"`
	Genres      []string    `json:"genres"`
	IMDBRating  string      `json:"imdbRating"`
	Year        string      `json:"year"`
	ReleaseInfo string      `json:"releaseInfo"`
	Videos      []MetaVideo `json:"videos,omitempty"`
}

// MetaVideo is one episode embedded in a series entry.
type MetaVideo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	Overview  string `json:"overview"`
	Thumbnail string `json:"thumbnail"`
}

// StreamEntry is one playable stream.
type StreamEntry struct {
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Subtitles     []any          `json:"subtitles,omitempty"`
	BehaviorHints *BehaviorHints `json:"behaviorHints,omitempty"`
}

// BehaviorHints provides hints to Stremio about stream behavior.
type BehaviorHints struct {
	BingeGroup string `json:"bingeGroup,omitempty"`
}

// CatalogResponse is the body of a catalog request.
type CatalogResponse struct {
	Metas []CatalogEntry `json:"metas"`
}

// StreamResponse is the body of a stream request.
type StreamResponse struct {
	Streams []StreamEntry `json:"streams"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status            string `json:"status"`
	Addon             string `json:"addon,omitempty"`
	Entries           int    `json:"entries"`
	DatabaseExists    bool   `json:"database_exists"`
	StremioCompatible bool   `json:"stremio_compatible"`
	Error             string `json:"error,omitempty"`
}
