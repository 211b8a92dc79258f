package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/model"
)

// CreateUser inserts a new user and returns the new user ID.
func (s *pgStore) CreateUser(username, hashedPassword string) (int, error) {
	query := `
	INSERT INTO users (username, password_hash, created_at)
	VALUES ($1, $2, now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRow(query, username, hashedPassword).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// GetUserByUsername fetches a user by username. Returns sql.ErrNoRows if not found.
func (s *pgStore) GetUserByUsername(username string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, username, password_hash, created_at
	FROM users
	WHERE username = $1;
	`
	err := s.db.Get(&u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by username")
		return nil, err
	}
	return &u, nil
}

// GetUserByID fetches a user by ID. Returns sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, username, password_hash, created_at
	FROM users
	WHERE id = $1;
	`
	err := s.db.Get(&u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) CountUsers() (int, error) {
	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		log.Error().Err(err).Msg("failed to count users")
		return 0, err
	}
	return count, nil
}
