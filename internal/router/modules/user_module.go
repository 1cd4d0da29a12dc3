package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/internal/application/auth"
	handlers "github.com/oksasatya/users-api/internal/interface/http"
	"github.com/oksasatya/users-api/internal/interface/middleware"
)

// UserModule wires user and car handlers.
// Public: everything except GET /users/secret (bearer) and POST /users/signin (local credentials).
type UserModule struct {
	Users  *handlers.UserHandler
	Cars   *handlers.CarHandler
	Bearer auth.Strategy
	Local  auth.Strategy
	Logger logrus.FieldLogger
}

func NewUserModule(users *handlers.UserHandler, cars *handlers.CarHandler, bearer, local auth.Strategy, logger logrus.FieldLogger) *UserModule {
	return &UserModule{Users: users, Cars: cars, Bearer: bearer, Local: local, Logger: logger}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	requireBearer := middleware.Authenticate(m.Bearer, middleware.BearerHeader, m.Logger)
	requireLocal := middleware.Authenticate(m.Local, middleware.LocalBody, m.Logger)

	g := rg.Group("/users")
	g.GET("", m.Users.List)
	g.POST("", m.Users.Signup)
	g.POST("/signin", requireLocal, m.Users.SignIn)
	g.GET("/secret", requireBearer, m.Users.Secret)
	g.GET("/search", m.Users.Search)

	g.GET("/:userId", m.Users.Get)
	g.PATCH("/:userId", m.Users.Update)
	g.PUT("/:userId", m.Users.Replace)

	g.GET("/:userId/cars", m.Cars.List)
	g.POST("/:userId/cars", m.Cars.Add)
}
