package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"visitor-reception/internal/broadcast"
)

const sseKeepAlive = 30 * time.Second

// eventMessage writes a single SSE data frame and flushes it.
func eventMessage(c *gin.Context, data any) {
	// Format the data according to SSE specification.
	// Data must start with 'data: ' and end with '\n\n'.
	serialized, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal SSE event message", "error", err)
		return
	}

	serialized = append([]byte("data: "), serialized...)
	serialized = append(serialized, []byte("\n\n")...)

	c.Writer.Write(serialized)
	c.Writer.Flush()
}

// updatesHandler streams broadcast events to a dashboard viewer until the
// client disconnects. New subscribers receive nothing about past events.
func updatesHandler(broadcaster *broadcast.Broadcaster) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable buffering for Nginx

		c.Writer.WriteHeader(http.StatusOK)
		c.Writer.Flush()

		sub := broadcaster.Subscribe()
		defer sub.Close()

		clientGone := c.Request.Context().Done()

		ticker := time.NewTicker(sseKeepAlive)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-sub.C:
				if !ok {
					return
				}
				eventMessage(c, event)
			case <-ticker.C:
				// Comment frame keeps proxies from closing an idle stream
				c.Writer.Write([]byte(": keep-alive\n\n"))
				c.Writer.Flush()
			case <-clientGone:
				slog.Debug("SSE client disconnected")
				return
			}
		}
	}
}
