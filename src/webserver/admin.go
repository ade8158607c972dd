package webserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yunbow/line-faq-bot/src/store"
	"github.com/yunbow/line-faq-bot/src/types"
)

// Admin exposes the tables read-only.
type Admin struct {
	st store.Store
}

func NewAdmin(st store.Store) Admin {
	return Admin{st: st}
}

func (a Admin) ListFAQ(c *gin.Context) {
	faqs, err := a.st.ListFAQ(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"faq": faqs, "count": len(faqs)})
}

func (a Admin) ListSubscribers(c *gin.Context) {
	subs, err := a.st.ListSubscribers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	following := 0
	for _, s := range subs {
		if s.FollowState == types.Following {
			following++
		}
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subs, "count": len(subs), "following": following})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
