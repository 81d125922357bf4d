package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sanketa/backend/feed"
	"github.com/sanketa/backend/models"
)

// Subscriber opens live snapshot streams. The feed implements it.
type Subscriber interface {
	Subscribe(ctx context.Context, city, session string) *feed.Subscription
}

// StreamHandler handles the SSE endpoint
type StreamHandler struct {
	feed Subscriber
}

// NewStreamHandler creates a new handler with the given feed
func NewStreamHandler(feed Subscriber) *StreamHandler {
	return &StreamHandler{feed: feed}
}

// streamEvent is the payload of each SSE update event.
type streamEvent struct {
	Time          time.Time             `json:"time"`
	Meta          models.CityMeta       `json:"meta"`
	Intersections []models.Intersection `json:"intersections"`
}

// GetStream handles GET /api/stream
// Opens a Server-Sent Events connection and pushes one update event per
// stream interval. A repeated session id takes over the previous stream.
func (h *StreamHandler) GetStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	city := r.URL.Query().Get("city")
	session := r.URL.Query().Get("session")
	if session == "" {
		session = uuid.NewString()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.feed.Subscribe(r.Context(), city, session)
	defer sub.Close()

	for snap := range sub.C {
		payload, err := json.Marshal(streamEvent{
			Time:          time.Now().UTC(),
			Meta:          snap.Meta,
			Intersections: snap.Intersections,
		})
		if err != nil {
			log.Printf("Stream: failed to marshal update: %v", err)
			continue
		}
		fmt.Fprintf(w, "event: update\ndata: %s\n\n", payload)
		flusher.Flush()
	}
}
