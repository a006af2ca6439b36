package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
)

func TestRouter(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tagMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Route-Tag", "compare")
			next.ServeHTTP(w, r)
		})
	}

	r := New(WithRoutes(
		Route{Path: "/v1/attribution/compare", Method: http.MethodPost, Handler: okHandler, Middlewares: []func(http.Handler) http.Handler{tagMiddleware}},
		Route{Path: "/healthcheck", Method: http.MethodGet, Handler: okHandler},
	))

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedCode   string
		expectedTag    string
		expectedAllow  string
	}{
		{
			name:           "rota registrada aplica middlewares",
			method:         http.MethodPost,
			path:           "/v1/attribution/compare",
			expectedStatus: http.StatusOK,
			expectedTag:    "compare",
		},
		{
			name:           "rota inexistente",
			method:         http.MethodGet,
			path:           "/v1/unknown",
			expectedStatus: http.StatusNotFound,
			expectedCode:   apiErrors.ErrRouteNotFound,
		},
		{
			name:           "método não suportado",
			method:         http.MethodGet,
			path:           "/v1/attribution/compare",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   apiErrors.ErrMethodNotAllowed,
			expectedAllow:  "POST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedTag, rr.Header().Get("X-Route-Tag"))

			if tt.expectedCode == "" {
				return
			}

			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body apiErrors.APIError
			require.NoError(t, jsoniter.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Code)
			assert.Contains(t, body.Message, tt.path)

			if tt.expectedAllow != "" {
				assert.Contains(t, rr.Header().Get("Allow"), tt.expectedAllow)
			}
		})
	}
}
