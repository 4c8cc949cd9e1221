package catalog

import (
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/models"
)

const (
	MoviesCatalogID = "streamnova_movies"
	SeriesCatalogID = "streamnova_series"
)

// Manifest describes the addon's capabilities from its configured identity.
func Manifest(cfg config.AddonConfig) models.Manifest {
	extras := []models.CatalogExtra{
		{Name: "search", IsRequired: false},
		{Name: "genre", IsRequired: false},
		{Name: "skip", IsRequired: false},
	}

	prefixes := cfg.IDPrefixes
	if len(prefixes) == 0 {
		prefixes = []string{"streamnova_", MoviePrefix, ContentPrefix}
	}

	return models.Manifest{
		ID:          cfg.ID,
		Version:     cfg.Version,
		Name:        cfg.Name,
		Description: cfg.Description,
		Resources:   []string{"catalog", "stream"},
		Types:       []string{models.KindMovie.String(), models.KindSeries.String()},
		Catalogs: []models.CatalogDefinition{
			{Type: models.KindMovie.String(), ID: MoviesCatalogID, Name: cfg.Name + " Movies", Extra: extras},
			{Type: models.KindSeries.String(), ID: SeriesCatalogID, Name: cfg.Name + " Series", Extra: extras},
		},
		IDPrefixes: prefixes,
		Background: cfg.Background,
		Logo:       cfg.Logo,
	}
}
