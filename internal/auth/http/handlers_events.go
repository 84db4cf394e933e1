package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/catatanku/catatan-backend/internal/auth/middleware"
)

// StreamEvents streams auth-state changes for the current user over
// Server-Sent Events, so a view learns about a sign-out triggered elsewhere
// (another tab, account deletion) without polling. The subscription lives
// exactly as long as the request: it is opened on entry and closed when the
// client disconnects.
func (h *Handler) StreamEvents(c *gin.Context) {
	userID := middleware.UserID(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()

	pubsub := h.sessions.Subscribe(ctx, userID)
	defer pubsub.Close()

	fmt.Fprintf(c.Writer, "event: connected\ndata: {\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	// Keep-alive pings so proxies do not drop the idle stream.
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	events := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case msg, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "event: auth\ndata: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}
