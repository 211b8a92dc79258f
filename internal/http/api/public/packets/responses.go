package packets

import "github.com/beacon-signage/beacon/internal/model"

type PlayerDisplayResponse struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	LayoutConfig     model.Document `json:"layout_config"`
	BackgroundConfig model.Document `json:"background_config"`
}

type TimeResponse struct {
	Time      string  `json:"time"`
	Date      string  `json:"date"`
	Timestamp float64 `json:"timestamp"`
}
