package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/internal/domain/entity"
	repo "github.com/oksasatya/users-api/internal/domain/repository"
	"github.com/oksasatya/users-api/internal/domain/security"
	"github.com/oksasatya/users-api/pkg/mailer"
	mailtpl "github.com/oksasatya/users-api/pkg/mailer/templates"
)

// UserCache caches public user views.
type UserCache interface {
	Get(ctx context.Context, id string) (*entity.PublicUser, bool, error)
	Add(ctx context.Context, u entity.PublicUser) error
	Set(ctx context.Context, u entity.PublicUser) error
	Invalidate(ctx context.Context, id string) error
}

// UserIndex is a search index over public user views.
type UserIndex interface {
	Put(ctx context.Context, u entity.PublicUser) error
	Search(ctx context.Context, q string, size int) ([]entity.PublicUser, error)
}

// JobPublisher enqueues background jobs such as emails.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Service runs the user lifecycle: signup, sign-in, reads and profile writes.
// Cache, Index and Jobs are optional side channels; their failures are logged, never returned.
type Service struct {
	Repo    repo.UserRepository
	Hasher  security.PasswordHasher
	Tokens  security.TokenIssuer
	Logger  logrus.FieldLogger
	Cache   UserCache
	Index   UserIndex
	Jobs    JobPublisher
	AppName string
}

type Option func(*Service)

func WithCache(c UserCache) Option { return func(s *Service) { s.Cache = c } }
func WithIndex(i UserIndex) Option { return func(s *Service) { s.Index = i } }
func WithJobs(p JobPublisher, appName string) Option {
	return func(s *Service) {
		s.Jobs = p
		s.AppName = appName
	}
}

func NewService(users repo.UserRepository, hasher security.PasswordHasher, tokens security.TokenIssuer, logger logrus.FieldLogger, opts ...Option) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	s := &Service{Repo: users, Hasher: hasher, Tokens: tokens, Logger: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is returned by signup and sign-in.
type AuthResult struct {
	Token string            `json:"token"`
	User  entity.PublicUser `json:"user"`
}

type ListResult struct {
	Data []entity.PublicUser `json:"data"`
}

type UpdateResult struct {
	Success bool              `json:"success"`
	User    entity.PublicUser `json:"user"`
}

// Signup creates the user and returns a token for it. The email pre-check is advisory;
// the store's unique index decides concurrent signups.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := entity.NormalizeEmail(in.Email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailConflict
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{FirstName: in.FirstName, LastName: in.LastName, Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	signupsTotal.Add(1)

	pub := entity.ToPublicView(*u)
	s.Logger.WithField("user_id", u.ID).Info("user signed up")
	s.index(ctx, pub)
	s.enqueue(ctx, mailer.EmailJob{
		To:       pub.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.WelcomeData(s.AppName, pub.FirstName, pub.Email),
	})
	return &AuthResult{Token: token, User: pub}, nil
}

// SignIn mints a token for an identity that a strategy already authenticated.
func (s *Service) SignIn(ctx context.Context, identity entity.PublicUser) (*AuthResult, error) {
	token, err := s.Tokens.Issue(identity.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	signinsTotal.Add(1)
	return &AuthResult{Token: token, User: identity}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*entity.PublicUser, error) {
	if s.Cache != nil {
		if u, ok, err := s.Cache.Get(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("user cache read failed")
		} else if ok {
			return u, nil
		}
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	pub := entity.ToPublicView(*u)
	if s.Cache != nil {
		if err := s.Cache.Add(ctx, pub); err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("user cache write failed")
		}
	}
	return &pub, nil
}

// ListUsers returns every user. There is no pagination.
func (s *Service) ListUsers(ctx context.Context) (*ListResult, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &ListResult{Data: entity.ToPublicViews(users)}, nil
}

// SearchUsers queries the search index; without one it finds nothing.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) (*ListResult, error) {
	if s.Index == nil {
		return &ListResult{Data: []entity.PublicUser{}}, nil
	}
	found, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return &ListResult{Data: found}, nil
}

// UpdateUser merges the provided fields into the stored user.
func (s *Service) UpdateUser(ctx context.Context, id string, fields entity.UserFields) (*UpdateResult, error) {
	if fields.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	return s.write(ctx, id, fields)
}

// ReplaceUser overwrites every mutable field; all of them must be provided.
func (s *Service) ReplaceUser(ctx context.Context, id string, fields entity.UserFields) (*UpdateResult, error) {
	if fields.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if !fields.IsComplete() {
		return nil, ErrIncompleteReplace
	}
	return s.write(ctx, id, fields)
}

func (s *Service) write(ctx context.Context, id string, fields entity.UserFields) (*UpdateResult, error) {
	up, changed, err := s.toUpdate(fields)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.UpdateByID(ctx, id, up)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrEmailTaken):
			return nil, ErrEmailConflict
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	updatesTotal.Add(1)

	pub := entity.ToPublicView(*u)
	s.Logger.WithFields(logrus.Fields{"user_id": id, "fields": changed}).Info("user updated")
	s.refreshCache(ctx, pub)
	s.index(ctx, pub)
	s.enqueue(ctx, mailer.EmailJob{
		To:       pub.Email,
		Template: mailtpl.ProfileUpdated,
		Data:     mailtpl.ProfileUpdatedData(s.AppName, pub.FirstName, pub.Email, changed),
	})
	return &UpdateResult{Success: true, User: pub}, nil
}

// toUpdate normalizes the email and hashes a new password so the store never sees plaintext.
func (s *Service) toUpdate(f entity.UserFields) (entity.UserUpdate, []string, error) {
	var (
		up      entity.UserUpdate
		changed []string
	)
	if f.FirstName != nil {
		v := *f.FirstName
		up.FirstName = &v
		changed = append(changed, "firstName")
	}
	if f.LastName != nil {
		v := *f.LastName
		up.LastName = &v
		changed = append(changed, "lastName")
	}
	if f.Email != nil {
		v := entity.NormalizeEmail(*f.Email)
		up.Email = &v
		changed = append(changed, "email")
	}
	if f.Password != nil {
		hash, err := s.hash(*f.Password)
		if err != nil {
			return entity.UserUpdate{}, nil, err
		}
		up.PasswordHash = &hash
		changed = append(changed, "password")
	}
	return up, changed, nil
}

func (s *Service) hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	h, err := s.Hasher.Hash(plain)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashFailure, err)
	}
	return h, nil
}

// refreshCache overwrites the cached view with the row the update returned.
// If that fails the entry is dropped instead.
func (s *Service) refreshCache(ctx context.Context, u entity.PublicUser) {
	if s.Cache == nil {
		return
	}
	err := s.Cache.Set(ctx, u)
	if err == nil {
		return
	}
	s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user cache refresh failed")
	if err := s.Cache.Invalidate(ctx, u.ID); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user cache invalidate failed")
	}
}

func (s *Service) index(ctx context.Context, u entity.PublicUser) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}

func (s *Service) enqueue(ctx context.Context, job mailer.EmailJob) {
	if s.Jobs == nil {
		return
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("template", job.Template).Warn("failed to publish email job")
	}
}
