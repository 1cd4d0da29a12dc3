package router

import (
	"github.com/oksasatya/users-api/internal/container"
	handlers "github.com/oksasatya/users-api/internal/interface/http"
	"github.com/oksasatya/users-api/internal/router/modules"
)

// InitModules builds handlers from the container and registers every module.
func InitModules(r *Registry, c *container.Container) {
	users := handlers.NewUserHandler(c.UserService(), c.Logger)
	cars := handlers.NewCarHandler(c.CarService(), c.Logger)
	r.Add(modules.NewUserModule(users, cars, c.BearerStrategy(), c.LocalStrategy(), c.Logger))

	debug := modules.NewDebugModule(c.Config.DebugMetricsEnabled, c.Logger)
	if c.PGPool != nil {
		debug.AddCheck("postgres", c.PGPool.Ping)
	}
	if c.Redis != nil {
		debug.AddCheck("redis", modules.RedisPing(c.Redis))
	}
	r.Add(debug)
}
