package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ammerola/picking-be/internal/handlers"
	"github.com/ammerola/picking-be/internal/handlers/middleware"
	"github.com/ammerola/picking-be/test/helpers"
)

// serve routes req through a mux built from rt, with header-based identity
func serve(t *testing.T, rt *handlers.Router, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if rt.Auth == nil {
		rt.Auth = middleware.Auth(nil, helpers.TestLogger())
	}
	mux := http.NewServeMux()
	rt.Register(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func newRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(middleware.UserEmailHeader, "kim@example.com")
	return req
}
