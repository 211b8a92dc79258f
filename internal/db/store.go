// exposes a Store interface that is passed to API handlers
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/beacon-signage/beacon/internal/model"
)

type Store interface {
	// user functions
	CreateUser(username, hashedPassword string) (int, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	CountUsers() (int, error)

	// display functions
	ListDisplays() ([]model.DisplaySummary, error)
	GetDisplayByID(id int) (*model.Display, error)
	CreateDisplay(name, description string, layout, background model.Document) (int, error)
	UpdateDisplay(id int, name, description string, layout, background model.Document) error
	DeleteDisplay(id int) error
	CountDisplays() (int, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
