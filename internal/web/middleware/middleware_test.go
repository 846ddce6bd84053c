package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/web/middleware"
)

func echoMethod() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Method))
	})
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/tasks/1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestMethodOverride(t *testing.T) {
	tests := []struct {
		name   string
		method string
		form   url.Values
		want   string
	}{
		{
			name:   "patch override",
			method: http.MethodPost,
			form:   url.Values{"_method": {"PATCH"}},
			want:   http.MethodPatch,
		},
		{
			name:   "delete override lowercase",
			method: http.MethodPost,
			form:   url.Values{"_method": {"delete"}},
			want:   http.MethodDelete,
		},
		{
			name:   "unknown override ignored",
			method: http.MethodPost,
			form:   url.Values{"_method": {"TRACE"}},
			want:   http.MethodPost,
		},
		{
			name:   "no override",
			method: http.MethodPost,
			form:   url.Values{"title": {"x"}},
			want:   http.MethodPost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			middleware.MethodOverride(echoMethod()).ServeHTTP(rr, postForm(tt.form))
			assert.Equal(t, tt.want, rr.Body.String())
		})
	}
}

func TestMethodOverride_IgnoresGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks?_method=DELETE", nil)
	rr := httptest.NewRecorder()

	middleware.MethodOverride(echoMethod()).ServeHTTP(rr, req)

	assert.Equal(t, http.MethodGet, rr.Body.String())
}

func TestLogging_PassesThrough(t *testing.T) {
	handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestLogging_AssignsRequestID(t *testing.T) {
	var seen string
	handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	header := rr.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, header)
	assert.Equal(t, header, seen)
}

func TestLogging_UniquePerRequest(t *testing.T) {
	handler := middleware.Logging(echoMethod())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.NotEqual(t,
		first.Header().Get(middleware.RequestIDHeader),
		second.Header().Get(middleware.RequestIDHeader))
}
