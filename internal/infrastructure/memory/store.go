// Package memory is an in-process store used for local development and tests.
// It enforces the same email uniqueness as the Postgres unique index.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/internal/domain/repository"
)

// Store holds users and cars behind a single RWMutex.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*entity.User
	byEmail map[string]string
	cars    map[string]*entity.Car
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   map[string]*entity.User{},
		byEmail: map[string]string{},
		cars:    map[string]*entity.Car{},
		now:     time.Now,
	}
}

// Users returns the store as a UserRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Cars returns the store as a CarRepository.
func (s *Store) Cars() *CarRepository { return &CarRepository{s: s} }

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Cars = append([]string(nil), u.Cars...)
	return &c
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[u.Email]; taken {
		return repository.ErrEmailTaken
	}
	now := s.now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Cars == nil {
		u.Cars = []string{}
	}
	s.users[u.ID] = cloneUser(u)
	s.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(s.users[id]), nil
}

// List returns users ordered by creation time.
func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *cloneUser(u))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *UserRepository) UpdateByID(_ context.Context, id string, up entity.UserUpdate) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if up.Email != nil && *up.Email != cur.Email {
		if _, taken := s.byEmail[*up.Email]; taken {
			return nil, repository.ErrEmailTaken
		}
	}
	next := cloneUser(cur)
	up.Apply(next)
	next.UpdatedAt = s.now()
	if next.Email != cur.Email {
		delete(s.byEmail, cur.Email)
		s.byEmail[next.Email] = id
	}
	s.users[id] = next
	return cloneUser(next), nil
}

type CarRepository struct{ s *Store }

func (r *CarRepository) Create(_ context.Context, c *entity.Car) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	seller, ok := s.users[c.SellerID]
	if !ok {
		return repository.ErrNotFound
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	stored := *c
	s.cars[c.ID] = &stored
	seller.Cars = append(seller.Cars, c.ID)
	return nil
}

// ListBySeller returns cars in the order they were added to the seller.
func (r *CarRepository) ListBySeller(_ context.Context, sellerID string) ([]entity.Car, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	seller, ok := s.users[sellerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := make([]entity.Car, 0, len(seller.Cars))
	for _, id := range seller.Cars {
		if c, ok := s.cars[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.CarRepository  = (*CarRepository)(nil)
)
