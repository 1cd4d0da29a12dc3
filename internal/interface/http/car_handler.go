package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/pkg/response"
	"github.com/oksasatya/users-api/pkg/validation"
)

type CarHandler struct {
	Svc    *userapp.CarService
	Logger logrus.FieldLogger
}

func NewCarHandler(svc *userapp.CarService, logger logrus.FieldLogger) *CarHandler {
	return &CarHandler{Svc: svc, Logger: logger}
}

type addCarRequest struct {
	Make  string `json:"make" binding:"required"`
	Model string `json:"model" binding:"required"`
	Year  int    `json:"year" binding:"required,gte=1886,lte=2100"`
}

func (h *CarHandler) List(c *gin.Context) {
	id, ok := bindUserID(c)
	if !ok {
		return
	}
	cars, err := h.Svc.ListCars(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.OK(c, cars)
}

func (h *CarHandler) Add(c *gin.Context) {
	id, ok := bindUserID(c)
	if !ok {
		return
	}
	var req addCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, msgInvalidBody, validation.ToDetails(err))
		return
	}
	car, err := h.Svc.AddCar(c.Request.Context(), id, userapp.CarInput{Make: req.Make, Model: req.Model, Year: req.Year})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Created(c, car)
}
