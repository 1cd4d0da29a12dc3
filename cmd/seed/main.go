package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/config"
	"github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/internal/container"
	pginfra "github.com/oksasatya/users-api/internal/infrastructure/postgres"
	"github.com/oksasatya/users-api/pkg/helpers"
)

// Seeds a demo user and car through the services so hashing and normalization match the API.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:         cfg.PostgresDSN(),
		MaxConns:    2,
		MinConns:    1,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	c := container.New(cfg, logger)
	c.UsePostgres(pool)
	defer c.Close()

	const (
		email    = "demo@example.com"
		password = "password123"
	)
	users := c.UserService()
	res, err := users.Signup(ctx, application.SignupInput{
		FirstName: "Demo",
		LastName:  "User",
		Email:     email,
		Password:  password,
	})
	switch {
	case errors.Is(err, application.ErrEmailConflict):
		logger.WithField("email", email).Info("demo user already seeded")
		return
	case err != nil:
		logger.WithError(err).Fatal("failed to seed user")
	}

	car, err := c.CarService().AddCar(ctx, res.User.ID, application.CarInput{Make: "Toyota", Model: "Corolla", Year: 2020})
	if err != nil {
		logger.WithError(err).Fatal("failed to seed car")
	}
	helpers.LogInfo(logger, "seeded demo user", logrus.Fields{
		"user_id": res.User.ID,
		"email":   email,
		"car_id":  car.ID,
	})
}
