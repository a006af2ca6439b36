package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/authenticating"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
)

type stubAuthenticator struct {
	resp *domain.LoginResponse
	err  error
}

func (s stubAuthenticator) LoginUser(string, string) (*domain.LoginResponse, error) {
	return s.resp, s.err
}

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return nil, s.err
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        stubAuthenticator
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "login válido",
			body:           `{"email": "admin@example.com", "password": "secret123"}`,
			service:        stubAuthenticator{resp: &domain.LoginResponse{Token: "token", RoleID: domain.RoleAdmin}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "operador inexistente responde como credencial inválida",
			body:           `{"email": "x@example.com", "password": "secret123"}`,
			service:        stubAuthenticator{err: authenticating.NewOperatorAuthError(authenticating.ErrUserNotFound, apiErrors.ErrUserNotFound, "x@example.com", "")},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:           "corpo inválido",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			Login(tt.service).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
				return
			}

			var resp domain.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "token", resp.Token)
		})
	}
}
