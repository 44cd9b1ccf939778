package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler answers liveness probes. The store ping sits behind a
// circuit breaker so probes fail fast while the store is down instead
// of each one waiting out a connection timeout.
type HealthHandler struct {
	client  *mongo.Client
	breaker *gobreaker.CircuitBreaker
}

func NewHealthHandler(client *mongo.Client, breaker *gobreaker.CircuitBreaker) *HealthHandler {
	return &HealthHandler{client: client, breaker: breaker}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_, err := h.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		return nil, h.client.Ping(ctx, nil)
	})
	if err != nil {
		writeMessage(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
