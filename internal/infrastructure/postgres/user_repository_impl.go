package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/internal/domain/repository"
)

const userColumns = `
	u.id::text, u.first_name, u.last_name, u.email, u.password_hash, u.created_at, u.updated_at,
	ARRAY(SELECT c.id::text FROM cars c WHERE c.seller_id = u.id ORDER BY c.created_at, c.id)`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.Cars); err != nil {
		return nil, err
	}
	if u.Cars == nil {
		u.Cars = []string{}
	}
	return u, nil
}

// mapErr translates driver errors into repository sentinels.
func mapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	switch pgCode(err) {
	case codeUniqueViolation:
		return repository.ErrEmailTaken
	case codeInvalidTextRepr, codeForeignKeyViolation:
		return repository.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, u.FirstName, u.LastName, u.Email, u.PasswordHash)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapErr("create user", err)
	}
	u.Cars = []string{}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+`
		FROM users u
		WHERE u.id = $1
	`, id))
	if err != nil {
		return nil, mapErr("get user by id", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+`
		FROM users u
		WHERE u.email = $1
	`, email))
	if err != nil {
		return nil, mapErr("get user by email", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT`+userColumns+`
		FROM users u
		ORDER BY u.created_at, u.id
	`)
	if err != nil {
		return nil, mapErr("list users", err)
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapErr("scan user", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("list users", err)
	}
	return out, nil
}

// UpdateByID applies the non-nil fields in a single statement.
func (r *UserRepository) UpdateByID(ctx context.Context, id string, up entity.UserUpdate) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users u
		SET first_name    = COALESCE($2, u.first_name),
		    last_name     = COALESCE($3, u.last_name),
		    email         = COALESCE($4, u.email),
		    password_hash = COALESCE($5, u.password_hash),
		    updated_at    = now()
		WHERE u.id = $1
		RETURNING`+userColumns,
		id, up.FirstName, up.LastName, up.Email, up.PasswordHash))
	if err != nil {
		return nil, mapErr("update user", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
