package api

import "github.com/Aquilabot/KreaPC-Configurator/internal/models"

type SearchRequest struct {
	Query  string `json:"query" validate:"required"`
	Region string `json:"region"`
}

type GetPartRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// SelectPartRequest carries either a catalog part or the PCPartPicker URL of
// a part to import.
type SelectPartRequest struct {
	Part *models.Part `json:"part"`
	URL  string       `json:"url" validate:"omitempty,url"`
}

type FilterRequest struct {
	Quick    string   `json:"quick"`
	Toggle   string   `json:"toggle" validate:"omitempty,filter"`
	Filters  []string `json:"filters" validate:"omitempty,dive,filter"`
	Clear    bool     `json:"clear"`
	Search   *string  `json:"search"`
	MinPrice *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
}

type SaveRequest struct {
	Name string `json:"name" validate:"max=120"`
}

type LoadRequest struct {
	ConfigurationID string `json:"configurationId" validate:"required"`
}

type ExportRequest struct {
	Region string `json:"region"`
}

type SelectedPart struct {
	Category string      `json:"category" validate:"required"`
	Part     models.Part `json:"part"`
}

// CompatibilityRequest is a whole selection checked without a session.
type CompatibilityRequest struct {
	Parts []SelectedPart `json:"parts" validate:"required,dive"`
}
