package webserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yunbow/line-faq-bot/src/config"
	"github.com/yunbow/line-faq-bot/src/line"
	"github.com/yunbow/line-faq-bot/src/store"
)

// Dispatcher handles a decoded batch of webhook events.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []line.Event)
}

func New(cfg config.Config, d Dispatcher, st store.Store) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery(), RequestIDMiddleware())
	attachRoutes(g, cfg, d, st)
	return g
}

func attachRoutes(r *gin.Engine, cfg config.Config, d Dispatcher, st store.Store) {
	hookH := NewWebhook(d)
	r.POST("/", hookH.Receive)
	r.POST("/webhook", hookH.Receive)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.AdminJWTSecret == "" {
		return
	}

	adminH := NewAdmin(st)
	admin := r.Group("/v1/admin")
	admin.Use(corsMiddleware(cfg.AdminOrigins), JWTMiddleware([]byte(cfg.AdminJWTSecret)))
	{
		admin.GET("/faq", adminH.ListFAQ)
		admin.GET("/subscribers", adminH.ListSubscribers)
		// preflight; answered by the cors middleware
		admin.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
}
