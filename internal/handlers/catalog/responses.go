package catalog

import "github.com/FlagBrew/local-teambuilder/internal/models"

type searchResponse struct {
	Total   int                   `json:"total"`
	Entries []models.CatalogEntry `json:"entries"`
	Types   []string              `json:"types"`
	Regions []string              `json:"regions"`
}
