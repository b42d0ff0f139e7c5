package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/trovekart/storefront-backend/internal/cartsync"
	"github.com/trovekart/storefront-backend/pkg/db/models"
	"github.com/trovekart/storefront-backend/pkg/logger"
)

type fakeCartLoader struct {
	lines map[uuid.UUID][]models.CartLine
}

func (f *fakeCartLoader) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	return f.lines[userID], nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func TestAdminMuxHealthz(t *testing.T) {
	mux := newAdminMux(cartsync.NewView(nil), testLogger())

	resp := httptest.NewRecorder()
	mux.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAdminMuxServesCartView(t *testing.T) {
	userID := uuid.New()
	loader := &fakeCartLoader{lines: map[uuid.UUID][]models.CartLine{
		userID: {
			{ProductID: uuid.New(), Title: "Mug", UnitPrice: decimal.NewFromInt(80), Quantity: 2},
		},
	}}
	mux := newAdminMux(cartsync.NewView(loader), testLogger())

	resp := httptest.NewRecorder()
	mux.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/carts/"+userID.String(), nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Data []cartsync.Line `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Title != "Mug" {
		t.Fatalf("unexpected cart view %+v", payload.Data)
	}
}

func TestAdminMuxRejectsMalformedUserID(t *testing.T) {
	mux := newAdminMux(cartsync.NewView(nil), testLogger())

	resp := httptest.NewRecorder()
	mux.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/carts/not-a-uuid", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
