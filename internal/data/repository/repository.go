package repository

import (
	"errors"

	"food-marketplace/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is wrapped by writes that matched no row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User          UserRepository
	LoginAttempt  LoginAttemptRepository
	Product       ProductRepository
	Establishment EstablishmentRepository
	Order         OrderRepository
	Cart          CartRepository
}

func NewRepository(db database.PgxIface, carts CartRepository, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		LoginAttempt:  NewLoginAttemptRepository(db, log),
		Product:       NewProductRepository(db, log),
		Establishment: NewEstablishmentRepository(db, log),
		Order:         NewOrderRepository(db, log),
		Cart:          carts,
	}
}
