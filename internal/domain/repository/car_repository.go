package repository

import (
	"context"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

// CarRepository persists cars. Create links the car to its seller's car list.
type CarRepository interface {
	Create(ctx context.Context, c *entity.Car) error
	ListBySeller(ctx context.Context, sellerID string) ([]entity.Car, error)
}
