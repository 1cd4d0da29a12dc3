package application

import (
	"context"
	"errors"
	"sync"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	createFunc     func(ctx context.Context, u *entity.User) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	listFunc       func(ctx context.Context) ([]entity.User, error)
	updateFunc     func(ctx context.Context, id string, up entity.UserUpdate) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) UpdateByID(ctx context.Context, id string, up entity.UserUpdate) (*entity.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, up)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Side-channel fakes
// =============================================================================

type fakeCache struct {
	mu          sync.Mutex
	items       map[string]entity.PublicUser
	invalidated []string
	err         error
}

func newFakeCache() *fakeCache { return &fakeCache{items: map[string]entity.PublicUser{}} }

func (c *fakeCache) Get(_ context.Context, id string) (*entity.PublicUser, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	u, ok := c.items[id]
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}

func (c *fakeCache) Set(_ context.Context, u entity.PublicUser) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.items[u.ID] = u
	return nil
}

func (c *fakeCache) Add(_ context.Context, u entity.PublicUser) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if _, ok := c.items[u.ID]; !ok {
		c.items[u.ID] = u
	}
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
	delete(c.items, id)
	return c.err
}

type fakeIndex struct {
	put    []entity.PublicUser
	putErr error
	found  []entity.PublicUser
}

func (x *fakeIndex) Put(_ context.Context, u entity.PublicUser) error {
	x.put = append(x.put, u)
	return x.putErr
}

func (x *fakeIndex) Search(_ context.Context, _ string, _ int) ([]entity.PublicUser, error) {
	return x.found, nil
}

type fakeJobs struct {
	jobs []any
	err  error
}

func (j *fakeJobs) PublishJSON(_ context.Context, body any) error {
	j.jobs = append(j.jobs, body)
	return j.err
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error)         { return "", errors.New("entropy exhausted") }
func (failingHasher) Verify(string, string) (bool, error) { return false, nil }

type countingIssuer struct{ calls int }

func (c *countingIssuer) Issue(userID string) (string, error) {
	c.calls++
	return "token-" + userID, nil
}
