package webserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yunbow/line-faq-bot/src/bot"
	"github.com/yunbow/line-faq-bot/src/line"
)

type Webhook struct {
	d Dispatcher
}

func NewWebhook(d Dispatcher) Webhook {
	return Webhook{d: d}
}

// Receive acknowledges every delivery with 200; malformed bodies are logged
// and dropped.
func (w Webhook) Receive(c *gin.Context) {
	reqID := c.GetString(requestIDKey)
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("webhook[%s]: read body: %v", reqID, err)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	var req line.WebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Printf("webhook[%s]: malformed payload: %v", reqID, err)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	ctx := bot.WithRequestID(c.Request.Context(), reqID)
	w.d.Dispatch(ctx, req.Events)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
