package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Check reports whether a backing service is reachable.
type Check func(ctx context.Context) error

type namedCheck struct {
	name string
	fn   Check
}

// DebugModule serves /health and, when enabled, expvar on /debug/vars.
type DebugModule struct {
	MetricsEnabled bool
	Logger         logrus.FieldLogger
	checks         []namedCheck
}

func NewDebugModule(metricsEnabled bool, logger logrus.FieldLogger) *DebugModule {
	return &DebugModule{MetricsEnabled: metricsEnabled, Logger: logger}
}

func (m *DebugModule) AddCheck(name string, fn Check) {
	m.checks = append(m.checks, namedCheck{name: name, fn: fn})
}

func RedisPing(rdb *redis.Client) Check {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
	if m.MetricsEnabled {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}

func (m *DebugModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	failed := map[string]string{}
	for _, ch := range m.checks {
		if err := ch.fn(ctx); err != nil {
			failed[ch.name] = err.Error()
			if m.Logger != nil {
				m.Logger.WithError(err).WithField("check", ch.name).Warn("health check failed")
			}
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": failed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
