package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/eventra-backend/api/middleware"
	inventorysvc "github.com/plannerhq/eventra-backend/internal/inventory"
	pkgerrors "github.com/plannerhq/eventra-backend/pkg/errors"
	"github.com/plannerhq/eventra-backend/pkg/logger"
)

type testInventoryService struct {
	inventorysvc.Service
	reserveFn      func(ctx context.Context, dto inventorysvc.ReserveDTO) (*inventorysvc.ItemDTO, error)
	availabilityFn func(ctx context.Context, itemID uuid.UUID, date time.Time) (int64, error)
}

func (s *testInventoryService) Reserve(ctx context.Context, dto inventorysvc.ReserveDTO) (*inventorysvc.ItemDTO, error) {
	if s.reserveFn != nil {
		return s.reserveFn(ctx, dto)
	}
	return &inventorysvc.ItemDTO{ID: dto.ItemID}, nil
}

func (s *testInventoryService) CheckAvailability(ctx context.Context, itemID uuid.UUID, date time.Time) (int64, error) {
	if s.availabilityFn != nil {
		return s.availabilityFn(ctx, itemID, date)
	}
	return 0, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newAuthedRequest(method, target, body string, userID uuid.UUID, params map[string]string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	}
	if len(params) > 0 {
		routeCtx := chi.NewRouteContext()
		for key, value := range params {
			routeCtx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}
	return req
}

func TestReserveInventoryItemStampsActor(t *testing.T) {
	itemID := uuid.New()
	eventID := uuid.New()
	userID := uuid.New()

	var captured inventorysvc.ReserveDTO
	svc := &testInventoryService{
		reserveFn: func(ctx context.Context, dto inventorysvc.ReserveDTO) (*inventorysvc.ItemDTO, error) {
			captured = dto
			return &inventorysvc.ItemDTO{ID: dto.ItemID}, nil
		},
	}

	body := `{"event_id":"` + eventID.String() + `","date":"2026-07-15","quantity":4}`
	req := newAuthedRequest(http.MethodPost, "/api/v1/inventory/"+itemID.String()+"/reservations", body, userID, map[string]string{"itemId": itemID.String()})

	resp := httptest.NewRecorder()
	ReserveInventoryItem(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, itemID, captured.ItemID)
	assert.Equal(t, userID, captured.CreatedBy)
	assert.Equal(t, int64(4), captured.Quantity)
	assert.Equal(t, "2026-07-15", captured.Date.Format("2006-01-02"))
}

func TestReserveInventoryItemRejectsBadDate(t *testing.T) {
	itemID := uuid.New()
	body := `{"event_id":"` + uuid.NewString() + `","date":"15-07-2026","quantity":1}`
	req := newAuthedRequest(http.MethodPost, "/api/v1/inventory/"+itemID.String()+"/reservations", body, uuid.New(), map[string]string{"itemId": itemID.String()})

	resp := httptest.NewRecorder()
	ReserveInventoryItem(&testInventoryService{}, testLogger())(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestReserveInventoryItemSurfacesCapacityDetails(t *testing.T) {
	itemID := uuid.New()
	svc := &testInventoryService{
		reserveFn: func(ctx context.Context, dto inventorysvc.ReserveDTO) (*inventorysvc.ItemDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeCapacityExceeded, "requested quantity exceeds remaining capacity").
				WithDetails(map[string]any{"available": 2})
		},
	}

	body := `{"event_id":"` + uuid.NewString() + `","date":"2026-07-15","quantity":9}`
	req := newAuthedRequest(http.MethodPost, "/api/v1/inventory/"+itemID.String()+"/reservations", body, uuid.New(), map[string]string{"itemId": itemID.String()})

	resp := httptest.NewRecorder()
	ReserveInventoryItem(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "CAPACITY_EXCEEDED", envelope.Error.Code)
	assert.Equal(t, float64(2), envelope.Error.Details["available"])
}

func TestReserveInventoryItemRequiresUserContext(t *testing.T) {
	itemID := uuid.New()
	body := `{"event_id":"` + uuid.NewString() + `","date":"2026-07-15","quantity":1}`
	req := newAuthedRequest(http.MethodPost, "/api/v1/inventory/"+itemID.String()+"/reservations", body, uuid.Nil, map[string]string{"itemId": itemID.String()})

	resp := httptest.NewRecorder()
	ReserveInventoryItem(&testInventoryService{}, testLogger())(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestItemAvailabilityRequiresDate(t *testing.T) {
	itemID := uuid.New()

	req := newAuthedRequest(http.MethodGet, "/api/v1/inventory/"+itemID.String()+"/availability", "", uuid.New(), map[string]string{"itemId": itemID.String()})
	resp := httptest.NewRecorder()
	ItemAvailability(&testInventoryService{}, testLogger())(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	svc := &testInventoryService{
		availabilityFn: func(ctx context.Context, id uuid.UUID, date time.Time) (int64, error) {
			assert.Equal(t, itemID, id)
			return 5, nil
		},
	}
	req = newAuthedRequest(http.MethodGet, "/api/v1/inventory/"+itemID.String()+"/availability?date=2026-07-15", "", uuid.New(), map[string]string{"itemId": itemID.String()})
	resp = httptest.NewRecorder()
	ItemAvailability(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data struct {
			Available int64 `json:"available"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, int64(5), envelope.Data.Available)
}

func TestItemAvailabilityNilService(t *testing.T) {
	req := newAuthedRequest(http.MethodGet, "/api/v1/inventory/"+uuid.NewString()+"/availability?date=2026-07-15", "", uuid.New(), nil)
	resp := httptest.NewRecorder()
	ItemAvailability(nil, testLogger())(resp, req)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}