package postgres

import (
	"context"

	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/internal/domain/repository"
)

type CarRepository struct {
	db DB
}

func NewCarRepository(db DB) *CarRepository {
	return &CarRepository{db: db}
}

// Create inserts the car; a missing seller surfaces as repository.ErrNotFound.
func (r *CarRepository) Create(ctx context.Context, c *entity.Car) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO cars (seller_id, make, model, year)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at
	`, c.SellerID, c.Make, c.Model, c.Year)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return mapErr("create car", err)
	}
	return nil
}

func (r *CarRepository) ListBySeller(ctx context.Context, sellerID string) ([]entity.Car, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, seller_id::text, make, model, year, created_at
		FROM cars
		WHERE seller_id = $1
		ORDER BY created_at, id
	`, sellerID)
	if err != nil {
		return nil, mapErr("list cars", err)
	}
	defer rows.Close()

	out := []entity.Car{}
	for rows.Next() {
		var c entity.Car
		if err := rows.Scan(&c.ID, &c.SellerID, &c.Make, &c.Model, &c.Year, &c.CreatedAt); err != nil {
			return nil, mapErr("scan car", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("list cars", err)
	}
	return out, nil
}

var _ repository.CarRepository = (*CarRepository)(nil)
