package db

import (
	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/model"
)

// SeedAdminIfEmpty inserts one admin user iff the users table is empty.
// The caller supplies the already-hashed password so this package stays below
// the auth layer. Safe to call on every boot.
func SeedAdminIfEmpty(store Store, username, hashedPassword string) error {
	count, err := store.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := store.CreateUser(username, hashedPassword); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("seeded default admin user")
	return nil
}

// SeedDefaultDisplayIfEmpty inserts the starter "Default Display" iff the
// displays table is empty.
func SeedDefaultDisplayIfEmpty(store Store) error {
	count, err := store.CountDisplays()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	id, err := store.CreateDisplay(
		"Default Display",
		"Default digital signage display",
		model.DefaultSeedLayout(),
		model.DefaultBackground(),
	)
	if err != nil {
		return err
	}
	log.Info().Int("display_id", id).Msg("seeded default display")
	return nil
}
