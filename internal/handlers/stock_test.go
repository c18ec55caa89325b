package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/handlers"
	"github.com/ammerola/picking-be/test/helpers"
	"github.com/ammerola/picking-be/test/mocks"
)

func TestStockHandler_Lookup(t *testing.T) {
	item := domain.Item{"id": float64(77), "name": "Green Tea", "barcode": "4901234", "quantity": float64(12), "extra": "kept"}

	tests := []struct {
		name       string
		target     string
		result     *domain.LookupResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found_returns_raw_item",
			target:     "/stock?barcode=4901234",
			result:     &domain.LookupResult{Item: item, ScannedPages: 3},
			wantStatus: http.StatusOK,
			wantBody:   `{"barcode":"4901234","extra":"kept","id":77,"name":"Green Tea","quantity":12}`,
		},
		{
			name:       "missing_barcode",
			target:     "/stock",
			err:        &domain.LookupError{Kind: domain.LookupMissingInput},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Barcode is required"}`,
		},
		{
			name:       "missing_credentials",
			target:     "/.netlify/functions/stock?barcode=4901234",
			err:        &domain.LookupError{Kind: domain.LookupConfigurationError},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Server Configuration Error: Missing Environment Variables"}`,
		},
		{
			name:       "rejected_credentials",
			target:     "/api/v1/stock?barcode=4901234",
			err:        &domain.LookupError{Kind: domain.LookupAuthenticationFailed, ScannedPages: 1},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Authentication Failed (Check Env Vars)"}`,
		},
		{
			name:       "not_found_reports_pages",
			target:     "/stock?barcode=4901234",
			err:        &domain.LookupError{Kind: domain.LookupNotFound, ScannedPages: 51, Reason: domain.ReasonPageCap},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Product not found in BoxHero","scanned_pages":51}`,
		},
		{
			name:       "not_found_after_upstream_error",
			target:     "/stock?barcode=4901234",
			err:        &domain.LookupError{Kind: domain.LookupNotFound, ScannedPages: 2, Reason: domain.ReasonUpstreamStatus},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Product not found in BoxHero","scanned_pages":2}`,
		},
		{
			name:       "unexpected_error_message",
			target:     "/stock?barcode=4901234",
			err:        &domain.LookupError{Kind: domain.LookupUnexpected, Err: errors.New("invalid character '<' looking for beginning of value")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"invalid character '<' looking for beginning of value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockStockService(ctrl)
			svc.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(tt.result, tt.err)

			rt := &handlers.Router{Stock: handlers.NewStockHandler(svc, helpers.TestLogger())}
			w := serve(t, rt, newRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestStockHandler_LookupPassesBarcode(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockStockService(ctrl)
	svc.EXPECT().
		Lookup(gomock.Any(), " 4901234 ").
		DoAndReturn(func(_ context.Context, barcode string) (*domain.LookupResult, error) {
			return &domain.LookupResult{Item: domain.Item{"barcode": "4901234"}}, nil
		})

	rt := &handlers.Router{Stock: handlers.NewStockHandler(svc, helpers.TestLogger())}
	w := serve(t, rt, newRequest(http.MethodGet, "/stock?barcode=%204901234%20", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStockHandler_LastSeen(t *testing.T) {
	tests := []struct {
		name       string
		snap       domain.StockSnapshot
		found      bool
		err        error
		wantStatus int
	}{
		{name: "recorded", snap: domain.StockSnapshot{Name: "Green Tea", Qty: 2, SafeQty: 5}, found: true, wantStatus: http.StatusOK},
		{name: "never_seen", wantStatus: http.StatusNotFound},
		{name: "cache_failure", err: errors.New("redis down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockStockService(ctrl)
			svc.EXPECT().LastSeen(gomock.Any(), "4901234").Return(tt.snap, tt.found, tt.err)

			rt := &handlers.Router{Stock: handlers.NewStockHandler(svc, helpers.TestLogger())}
			w := serve(t, rt, newRequest(http.MethodGet, "/api/v1/stock/4901234/last", nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.found {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "Green Tea", body["name"])
				assert.Equal(t, true, body["below_safe_stock"])
			}
		})
	}
}

func TestStockResponse_PlainError(t *testing.T) {
	status, body := handlers.StockResponse(nil, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, handlers.ErrorResponse{Error: "boom"}, body)
}
