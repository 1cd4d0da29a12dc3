package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/internal/application/auth"
	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/pkg/response"
)

const CtxUserKey = "user"

// ErrMissingCredentials means the request did not carry the fields a strategy needs.
var ErrMissingCredentials = errors.New("missing credentials")

// Extractor pulls credentials out of a request.
type Extractor func(c *gin.Context) (auth.Credentials, error)

// BearerHeader reads Authorization as either "Bearer <token>" or a bare token.
func BearerHeader(c *gin.Context) (auth.Credentials, error) {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if scheme, rest, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		h = strings.TrimSpace(rest)
	}
	return auth.Credentials{Token: h}, nil
}

type localCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LocalBody reads {email, password} from the JSON body. The body stays readable for the handler.
func LocalBody(c *gin.Context) (auth.Credentials, error) {
	var in localCredentials
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		return auth.Credentials{}, ErrMissingCredentials
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return auth.Credentials{}, ErrMissingCredentials
	}
	return auth.Credentials{Email: in.Email, Password: in.Password}, nil
}

// Authenticate runs strategy against the extracted credentials and stores the identity under "user".
// Missing credentials abort with 400, rejected ones with an empty 401.
func Authenticate(strategy auth.Strategy, extract Extractor, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cr, err := extract(c)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Missing credentials")
			return
		}
		user, err := strategy.Authenticate(c.Request.Context(), cr)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				if logger != nil {
					logger.WithField("request_id", c.GetString(RequestIDKey)).WithError(err).Debug("authentication rejected")
				}
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			response.Internal(c, logger, err)
			return
		}
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity set by Authenticate.
func CurrentUser(c *gin.Context) (entity.PublicUser, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return entity.PublicUser{}, false
	}
	u, ok := v.(entity.PublicUser)
	return u, ok
}
