package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/internal/interface/middleware"
	"github.com/oksasatya/users-api/pkg/response"
	"github.com/oksasatya/users-api/pkg/validation"
)

// Client-facing messages.
const (
	msgEmailInUse    = "Email is already in use"
	msgUserNotFound  = "User does not exists"
	msgEmptyUpdate   = "Please include parameters to update"
	msgIncomplete    = "Please include firstName, lastName, email and password"
	msgInvalidBody   = "invalid payload"
	msgPasswordLong  = "password must be at most 72 bytes"
	msgInvalidUserID = "invalid user id"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger logrus.FieldLogger
}

func NewUserHandler(svc *userapp.Service, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=1,max=72"`
}

// profileRequest backs both PATCH and PUT; nil means the field was not sent.
type profileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=1,max=72"`
}

func (r profileRequest) fields() entity.UserFields {
	return entity.UserFields{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Password: r.Password}
}

type userURI struct {
	UserID string `uri:"userId" binding:"required,uuid"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// bindUserID reads :userId; on failure the request has already been aborted.
func bindUserID(c *gin.Context) (string, bool) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Invalid(c, msgInvalidUserID, validation.ToDetails(err))
		return "", false
	}
	return uri.UserID, true
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, msgInvalidBody, validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Signup(c.Request.Context(), userapp.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, res)
}

// SignIn runs after the local strategy has put the identity in the context.
func (h *UserHandler) SignIn(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	res, err := h.Svc.SignIn(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, res)
}

func (h *UserHandler) Secret(c *gin.Context) {
	response.OK(c, gin.H{"secret": "resource"})
}

func (h *UserHandler) List(c *gin.Context) {
	res, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, res)
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Invalid(c, "invalid query", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.SearchUsers(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, res)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := bindUserID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	h.write(c, h.Svc.UpdateUser)
}

func (h *UserHandler) Replace(c *gin.Context) {
	h.write(c, h.Svc.ReplaceUser)
}

type writeFunc func(ctx context.Context, id string, f entity.UserFields) (*userapp.UpdateResult, error)

func (h *UserHandler) write(c *gin.Context, fn writeFunc) {
	id, ok := bindUserID(c)
	if !ok {
		return
	}
	var req profileRequest
	// An absent body is an empty update, not a malformed one.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Invalid(c, msgInvalidBody, validation.ToDetails(err))
		return
	}
	res, err := fn(c.Request.Context(), id, req.fields())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, res)
}

func (h *UserHandler) fail(c *gin.Context, err error) { writeServiceError(c, h.Logger, err) }

// writeServiceError maps service errors onto status codes; anything unknown is a logged 500.
func writeServiceError(c *gin.Context, logger logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, userapp.ErrEmailConflict):
		response.Error(c, http.StatusForbidden, msgEmailInUse)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, userapp.ErrEmptyUpdate):
		response.Error(c, http.StatusBadRequest, msgEmptyUpdate)
	case errors.Is(err, userapp.ErrIncompleteReplace):
		response.Error(c, http.StatusBadRequest, msgIncomplete)
	case errors.Is(err, userapp.ErrEmptyPassword):
		response.Error(c, http.StatusBadRequest, "password must not be empty")
	case errors.Is(err, userapp.ErrPasswordTooLong):
		response.Error(c, http.StatusBadRequest, msgPasswordLong)
	default:
		response.Internal(c, logger, err)
	}
}
