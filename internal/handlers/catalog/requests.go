package catalog

import "github.com/FlagBrew/local-teambuilder/internal/models"

type bulkRequest struct {
	Entries []models.CatalogEntry `json:"entries" validate:"required,min=1,dive"`
}
