// Package users holds the User Store implementations: in-memory, SQL
// (PostgreSQL, SQLite, MySQL) and MongoDB. Every implementation enforces
// email uniqueness itself and reports a clash as common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	// Create stores a new user. A user with the same email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindByEmail returns common.ErrorNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
