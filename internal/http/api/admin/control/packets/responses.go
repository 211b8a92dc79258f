package packets

import "github.com/beacon-signage/beacon/internal/model"

type DisplayResponse struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	LayoutConfig     model.Document `json:"layout_config"`
	BackgroundConfig model.Document `json:"background_config"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}

type DisplaySummaryResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type CreateDisplayResponse struct {
	Success   bool `json:"success"`
	DisplayID int  `json:"display_id"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
