package model

import "time"

type User struct {
	ID             int       `db:"id"            json:"id"`
	Username       string    `db:"username"      json:"username"`
	HashedPassword string    `db:"password_hash" json:"-"`
	CreatedAt      time.Time `db:"created_at"    json:"created_at"`
}
