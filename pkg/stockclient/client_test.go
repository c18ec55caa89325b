package stockclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/picking-be/pkg/stockclient"
	"github.com/ammerola/picking-be/test/helpers"
)

func TestClient_Lookup(t *testing.T) {
	tests := []struct {
		name    string
		barcode string
		status  int
		body    string
		want    *stockclient.Stock
		wantErr bool
	}{
		{
			name:    "found_item",
			barcode: "4901234",
			status:  http.StatusOK,
			body:    `{"name":"Green Tea","barcode":"4901234","quantity":12,"safe_stock":5}`,
			want:    &stockclient.Stock{Name: "Green Tea", Qty: 12, SafeQty: 5},
		},
		{
			name:    "alternate_field_names",
			barcode: "4901234",
			status:  http.StatusOK,
			body:    `{"product_name":"Oolong","total_quantity":"7","safeStock":null,"safe_quantity":2}`,
			want:    &stockclient.Stock{Name: "Oolong", Qty: 7, SafeQty: 2},
		},
		{
			name:    "non_numeric_quantity_is_zero",
			barcode: "4901234",
			status:  http.StatusOK,
			body:    `{"name":"Matcha","quantity":"n/a","stock":9}`,
			want:    &stockclient.Stock{Name: "Matcha", Qty: 0, SafeQty: 0},
		},
		{
			name:    "listing_page_picks_matching_item",
			barcode: "222",
			status:  http.StatusOK,
			body:    `{"items":[{"name":"a","barcode":"111","quantity":1},{"name":"b","barcodes":["333"," 222 "],"quantity":4}]}`,
			want:    &stockclient.Stock{Name: "b", Qty: 4},
		},
		{
			name:    "listing_page_without_match",
			barcode: "999",
			status:  http.StatusOK,
			body:    `{"items":[{"name":"a","barcode":"111"}]}`,
		},
		{
			name:    "not_found_is_no_data",
			barcode: "0000",
			status:  http.StatusNotFound,
			body:    `{"error":"Product not found in BoxHero","scanned_pages":3}`,
		},
		{
			name:    "server_error_is_no_data",
			barcode: "4901234",
			status:  http.StatusInternalServerError,
			body:    `{"error":"Authentication Failed (Check Env Vars)"}`,
		},
		{
			name:    "malformed_body_is_error",
			barcode: "4901234",
			status:  http.StatusOK,
			body:    `{"name":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, stockclient.DefaultPath, r.URL.Path)
				assert.Equal(t, tt.barcode, r.URL.Query().Get("barcode"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := stockclient.New(srv.URL, stockclient.WithLogger(helpers.TestLogger()))
			got, err := c.Lookup(context.Background(), tt.barcode)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_LookupBlankSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := stockclient.New(srv.URL)
	got, err := c.Lookup(context.Background(), "   ")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, calls.Load())
}

func TestClient_LookupTrimsAndUsesPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stock", r.URL.Path)
		assert.Equal(t, "4901234", r.URL.Query().Get("barcode"))
		_, _ = w.Write([]byte(`{"name":"Green Tea","stock":3}`))
	}))
	defer srv.Close()

	c := stockclient.New(srv.URL+"/", stockclient.WithPath("/api/v1/stock"))
	got, err := c.Lookup(context.Background(), " 4901234 ")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, float64(3), got.Qty)
}

func TestClient_LookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := stockclient.New(srv.URL).Lookup(context.Background(), "4901234")

	assert.Error(t, err)
}
