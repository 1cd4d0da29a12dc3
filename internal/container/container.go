// Package container holds the constructed components shared by the router, binaries and tests.
package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/config"
	"github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/internal/application/auth"
	"github.com/oksasatya/users-api/internal/domain/repository"
	"github.com/oksasatya/users-api/internal/infrastructure/cache"
	"github.com/oksasatya/users-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/users-api/internal/infrastructure/postgres"
	"github.com/oksasatya/users-api/internal/infrastructure/search"
	"github.com/oksasatya/users-api/pkg/helpers"
)

// Container is built once in main and passed explicitly. Optional clients stay nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool *pgxpool.Pool
	Redis  *redis.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitQueue

	JWT    *helpers.JWTManager
	Hasher *helpers.BcryptHasher

	Users repository.UserRepository
	Cars  repository.CarRepository
}

// New builds the security components and an in-memory store. Call UsePostgres to swap the store.
func New(cfg *config.Config, logger *logrus.Logger) *Container {
	store := memory.NewStore()
	return &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		Hasher: helpers.NewBcryptHasher(cfg.BcryptCost),
		Users:  store.Users(),
		Cars:   store.Cars(),
	}
}

func (c *Container) UsePostgres(pool *pgxpool.Pool) {
	c.PGPool = pool
	c.Users = pginfra.NewUserRepository(pool)
	c.Cars = pginfra.NewCarRepository(pool)
}

// UserService wires only the side channels that were configured.
func (c *Container) UserService() *application.Service {
	var opts []application.Option
	if c.Redis != nil {
		opts = append(opts, application.WithCache(cache.NewUserCache(c.Redis, c.Config.UserCacheTTL)))
	}
	if c.ES != nil {
		opts = append(opts, application.WithIndex(search.NewUserIndex(c.ES, c.Config.ESUsersIndex)))
	}
	if c.Rabbit != nil && c.Config.MailSendEnabled {
		opts = append(opts, application.WithJobs(c.Rabbit, c.Config.AppName))
	}
	return application.NewService(c.Users, c.Hasher, c.JWT, c.Logger, opts...)
}

func (c *Container) CarService() *application.CarService {
	return application.NewCarService(c.Users, c.Cars, c.Logger)
}

func (c *Container) BearerStrategy() *auth.BearerStrategy {
	return auth.NewBearerStrategy(c.JWT, c.Users)
}

func (c *Container) LocalStrategy() *auth.LocalStrategy {
	return auth.NewLocalStrategy(c.Hasher, c.Users)
}

// Close releases every client that was opened.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
