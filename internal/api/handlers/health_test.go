package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/testutil"
)

type downDB struct{}

func (downDB) PingContext(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler(t *testing.T) {
	db := testutil.NewTestDB(t)

	tests := []struct {
		name   string
		db     Pinger
		want   int
		handle func(*HealthHandler) http.HandlerFunc
	}{
		{"liveness", downDB{}, http.StatusOK, func(h *HealthHandler) http.HandlerFunc { return h.Healthz }},
		{"ready", db, http.StatusOK, func(h *HealthHandler) http.HandlerFunc { return h.Readyz }},
		{"database down", downDB{}, http.StatusServiceUnavailable, func(h *HealthHandler) http.HandlerFunc { return h.Readyz }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, logger.Nop())
			rr := call(tt.handle(h), http.MethodGet, "/readyz", "", 0, nil)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
