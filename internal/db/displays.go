package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/model"
)

// ListDisplays returns the list-view slice of every display, newest first.
func (s *pgStore) ListDisplays() ([]model.DisplaySummary, error) {
	var displays []model.DisplaySummary
	err := s.db.Select(&displays, `
		SELECT id, name, description, created_at
		FROM displays
		ORDER BY created_at DESC
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list displays")
		return nil, err
	}
	return displays, nil
}

// GetDisplayByID fetches a full display record. Returns sql.ErrNoRows if not
// found. A stored config blob that fails to parse fails this single read.
func (s *pgStore) GetDisplayByID(id int) (*model.Display, error) {
	var d model.Display
	err := s.db.Get(&d, `
		SELECT id, name, description, layout_config, background_config, created_at, updated_at
		FROM displays
		WHERE id = $1
		`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("display_id", id).Msg("failed to get display by id")
		return nil, err
	}
	return &d, nil
}

// CreateDisplay inserts a display with the given config documents and returns
// the new ID.
func (s *pgStore) CreateDisplay(name, description string, layout, background model.Document) (int, error) {
	query := `
	INSERT INTO displays (name, description, layout_config, background_config, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRow(query, name, description, layout, background).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to create display")
		return 0, err
	}
	return newID, nil
}

// UpdateDisplay overwrites all four mutable fields and bumps updated_at.
// Returns sql.ErrNoRows if the display does not exist.
func (s *pgStore) UpdateDisplay(id int, name, description string, layout, background model.Document) error {
	res, err := s.db.Exec(`
		UPDATE displays
		SET name = $2,
		description = $3,
		layout_config = $4,
		background_config = $5,
		updated_at = now()
		WHERE id = $1
		`, id, name, description, layout, background)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to update display")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteDisplay removes a display. Returns sql.ErrNoRows if it does not exist.
func (s *pgStore) DeleteDisplay(id int) error {
	res, err := s.db.Exec(`DELETE FROM displays WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to delete display")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *pgStore) CountDisplays() (int, error) {
	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM displays`); err != nil {
		log.Error().Err(err).Msg("failed to count displays")
		return 0, err
	}
	return count, nil
}
