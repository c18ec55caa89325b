// internal/handlers/routes.go
package handlers

import (
	"net/http"
)

// Router groups the handlers mounted on the API mux
type Router struct {
	Stock  *StockHandler
	Orders *OrderHandler
	Import *ImportHandler
	Export *ExportHandler
	Memos  *MemoHandler
	Health *HealthHandler

	// Auth wraps every route except stock lookups and health checks
	Auth func(http.Handler) http.Handler
}

// Register mounts every route on mux using method-specific patterns
func (rt *Router) Register(mux *http.ServeMux) {
	const apiV1 = "/api/v1"

	protect := func(h http.HandlerFunc) http.Handler {
		if rt.Auth == nil {
			return h
		}
		return rt.Auth(h)
	}

	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
		mux.HandleFunc("GET "+apiV1+"/health", rt.Health.Health)
	}

	// The scanner helper has called all three paths over time
	if rt.Stock != nil {
		mux.HandleFunc("GET /stock", rt.Stock.Lookup)
		mux.HandleFunc("GET /.netlify/functions/stock", rt.Stock.Lookup)
		mux.HandleFunc("GET "+apiV1+"/stock", rt.Stock.Lookup)
		mux.HandleFunc("GET "+apiV1+"/stock/{barcode}/last", rt.Stock.LastSeen)
	}

	if rt.Orders != nil {
		mux.Handle("GET "+apiV1+"/orders", protect(rt.Orders.ListOrders))
		mux.Handle("DELETE "+apiV1+"/orders", protect(rt.Orders.ClearAll))
		mux.Handle("PATCH "+apiV1+"/orders/{id}/picked", protect(rt.Orders.UpdatePickedQty))
		mux.Handle("POST "+apiV1+"/orders/{id}/complete", protect(rt.Orders.CompleteOrder))
		mux.Handle("POST "+apiV1+"/orders/{id}/revert", protect(rt.Orders.RevertOrder))
		mux.Handle("DELETE "+apiV1+"/orders/groups/{orderID}", protect(rt.Orders.DeleteOrderGroup))
	}

	if rt.Import != nil {
		mux.Handle("POST "+apiV1+"/orders/import", protect(rt.Import.ImportOrders))
		mux.Handle("GET "+apiV1+"/orders/import/{jobID}", protect(rt.Import.ImportStatus))
	}

	if rt.Export != nil {
		mux.Handle("GET "+apiV1+"/exports/orders/{orderID}", protect(rt.Export.ExportOrder))
		mux.Handle("GET "+apiV1+"/exports/range", protect(rt.Export.ExportRange))
	}

	if rt.Memos != nil {
		mux.Handle("GET "+apiV1+"/memos", protect(rt.Memos.Recent))
		mux.Handle("POST "+apiV1+"/memos", protect(rt.Memos.Send))
		mux.Handle("GET "+apiV1+"/memos/unread", protect(rt.Memos.Unread))
		mux.Handle("POST "+apiV1+"/memos/read", protect(rt.Memos.MarkRead))
		mux.Handle("GET "+apiV1+"/memos/stream", protect(rt.Memos.Stream))
	}
}
