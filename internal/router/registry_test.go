package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingModule struct{}

func (pingModule) Register(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestRegistryMountsModulesUnderBasePath(t *testing.T) {
	for base, path := range map[string]string{"": "/ping", "/v1": "/v1/ping"} {
		engine := gin.New()
		reg := NewRegistry(engine, base)
		reg.Add(pingModule{})
		reg.RegisterAll()

		res := do(t, engine, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, res.code, path)
		assert.Equal(t, "pong", string(res.body))

		res = do(t, engine, http.MethodGet, "/nope", nil)
		assert.Equal(t, http.StatusNotFound, res.code)
	}
}
