package router

import "github.com/gin-gonic/gin"

// Module is a feature (users, health/debug) that registers its routes on the registry's base group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
