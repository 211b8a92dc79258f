package redis

import (
	"github.com/redis/go-redis/v9"
)

// New builds a client for the shared cache tier.
func New(address, username, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
}
