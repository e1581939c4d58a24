package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"quiz-grading-service/internal/app"
)

// FeedHandler streams submission events for a quiz over a WebSocket, so
// instructor dashboards can react to submissions and grading passes as they
// happen.
type FeedHandler struct {
	service  *app.GradingService
	upgrader websocket.Upgrader
}

func NewFeedHandler(service *app.GradingService) *FeedHandler {
	return &FeedHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type feedMessage struct {
	Type    string              `json:"type"`
	Payload app.SubmissionEvent `json:"payload"`
}

// ServeFeed upgrades the request and forwards submission events until the
// client disconnects. The subscription is released on teardown.
func (h *FeedHandler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimSpace(chi.URLParam(r, "quizID"))

	events, cancel, err := h.service.Watch(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	defer cancel()

	done := make(chan struct{})

	// Reader only watches for the client going away; the feed is one-way.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(feedMessage{Type: event.Kind, Payload: event}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
