package packets

import "github.com/beacon-signage/beacon/internal/model"

// body for creating a display; both fields optional, placeholders apply
type CreateDisplayRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// body for a full display overwrite; absent configs collapse to {}
type UpdateDisplayRequest struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	LayoutConfig     model.Document `json:"layout_config"`
	BackgroundConfig model.Document `json:"background_config"`
}
