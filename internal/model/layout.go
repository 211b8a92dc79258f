package model

import "encoding/json"

// Zone types the player knows how to render. The server stores whatever the
// editor sends; this vocabulary only drives the seeded defaults.
const (
	ZoneClock        = "clock"
	ZoneIframe       = "iframe"
	ZoneAnnouncement = "announcement"
	ZoneRSS          = "rss"
	ZoneTimer        = "timer"
	ZoneImage        = "image"
	ZoneWeather      = "weather"
)

type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type TopBar struct {
	Mode        string `json:"mode"`
	ShowSeconds bool   `json:"show_seconds"`
}

// ZoneBackground is a tagged style union: transparent | color | glassmorphism | image.
type ZoneBackground struct {
	Type    string   `json:"type"`
	Value   string   `json:"value,omitempty"`
	Blur    *int     `json:"blur,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

type Zone struct {
	ID         int            `json:"id"`
	Type       string         `json:"type"`
	Content    string         `json:"content"`
	Opacity    float64        `json:"opacity"`
	FontFamily string         `json:"font_family"`
	FontSize   string         `json:"font_size"`
	Background ZoneBackground `json:"background"`
	DateFormat string         `json:"date_format,omitempty"`
	TimeFormat string         `json:"time_format,omitempty"`
}

type Layout struct {
	Grid       Grid   `json:"grid"`
	Zones      []Zone `json:"zones"`
	GlobalFont string `json:"global_font"`
	TopBar     TopBar `json:"top_bar"`
}

type Background struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func defaultZone(id int, zoneType, content, fontSize string) Zone {
	return Zone{
		ID:         id,
		Type:       zoneType,
		Content:    content,
		Opacity:    1.0,
		FontFamily: "Arial, sans-serif",
		FontSize:   fontSize,
		Background: ZoneBackground{Type: "transparent"},
	}
}

func mustDocument(v any) Document {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Document(raw)
}

// DefaultSeedLayout is the four-zone starter layout attached to the display
// seeded at first boot.
func DefaultSeedLayout() Document {
	clock := defaultZone(0, ZoneClock, "", "16px")
	clock.DateFormat = "full"
	clock.TimeFormat = "24h"

	announcement := defaultZone(2, ZoneAnnouncement, "Welcome to Digital Signage!", "24px")
	announcement.Background = ZoneBackground{Type: "glassmorphism", Blur: intPtr(10), Opacity: floatPtr(0.2)}

	return mustDocument(Layout{
		Grid: Grid{Rows: 2, Cols: 2},
		Zones: []Zone{
			clock,
			defaultZone(1, ZoneIframe, "", "16px"),
			announcement,
			defaultZone(3, ZoneRSS, "", "14px"),
		},
		GlobalFont: "Arial, sans-serif",
		TopBar:     TopBar{Mode: "visible", ShowSeconds: true},
	})
}

// NewDisplayLayout is the default layout attached to every display created
// through the API.
func NewDisplayLayout() Document {
	clock := defaultZone(0, ZoneClock, "", "16px")
	clock.DateFormat = "full"
	clock.TimeFormat = "24h"

	announcement := defaultZone(2, ZoneAnnouncement, "Welcome!", "24px")
	announcement.Background = ZoneBackground{Type: "glassmorphism", Blur: intPtr(10), Opacity: floatPtr(0.2)}

	return mustDocument(Layout{
		Grid: Grid{Rows: 2, Cols: 2},
		Zones: []Zone{
			clock,
			defaultZone(1, ZoneIframe, "", "16px"),
			announcement,
			defaultZone(3, ZoneTimer, "10", "48px"),
		},
		GlobalFont: "Arial, sans-serif",
		TopBar:     TopBar{Mode: "visible", ShowSeconds: true},
	})
}

// DefaultBackground is the dark solid color every new display starts with.
func DefaultBackground() Document {
	return mustDocument(Background{Type: "color", Value: "#1a1a1a"})
}
