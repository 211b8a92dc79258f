package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Display represents one configurable signage screen definition.
type Display struct {
	ID               int       `db:"id"                json:"id"`
	Name             string    `db:"name"              json:"name"`
	Description      string    `db:"description"       json:"description"`
	LayoutConfig     Document  `db:"layout_config"     json:"layout_config"`
	BackgroundConfig Document  `db:"background_config" json:"background_config"`
	CreatedAt        time.Time `db:"created_at"        json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"        json:"updated_at"`
}

// DisplaySummary is the list-view slice of a display.
type DisplaySummary struct {
	ID          int       `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
}

// Document is an opaque JSON blob stored as text. The server never interprets
// layout/background contents beyond validity; the contract is lossless
// round-trip storage.
type Document json.RawMessage

// EmptyDocument is what absent configs collapse to on update.
var EmptyDocument = Document(`{}`)

func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return string(EmptyDocument), nil
	}
	if !json.Valid(d) {
		return nil, fmt.Errorf("document is not valid JSON")
	}
	return string(d), nil
}

func (d *Document) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Document(EmptyDocument)
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Document", src)
	}
	if !json.Valid(raw) {
		return fmt.Errorf("stored document is not valid JSON")
	}
	*d = make(Document, len(raw))
	copy(*d, raw)
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte(EmptyDocument), nil
	}
	return d, nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	*d = make(Document, len(data))
	copy(*d, data)
	return nil
}
