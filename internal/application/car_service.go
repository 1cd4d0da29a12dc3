package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/internal/domain/entity"
	repo "github.com/oksasatya/users-api/internal/domain/repository"
)

// CarService manages the cars a user sells.
type CarService struct {
	Users  repo.UserRepository
	Cars   repo.CarRepository
	Logger logrus.FieldLogger
}

func NewCarService(users repo.UserRepository, cars repo.CarRepository, logger logrus.FieldLogger) *CarService {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &CarService{Users: users, Cars: cars, Logger: logger}
}

type CarInput struct {
	Make  string
	Model string
	Year  int
}

func (s *CarService) requireUser(ctx context.Context, id string) error {
	if _, err := s.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}

func (s *CarService) ListCars(ctx context.Context, userID string) ([]entity.Car, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	cars, err := s.Cars.ListBySeller(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return cars, nil
}

// AddCar creates a car with userID as seller and appends it to the user's cars.
func (s *CarService) AddCar(ctx context.Context, userID string, in CarInput) (*entity.Car, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	c := &entity.Car{Make: in.Make, Model: in.Model, Year: in.Year, SellerID: userID}
	if err := s.Cars.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create car: %w", err)
	}
	carsAddedTotal.Add(1)
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "car_id": c.ID}).Info("car added")
	return c, nil
}
