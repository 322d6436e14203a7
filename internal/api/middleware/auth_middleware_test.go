package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/marketbase/catalog-api/internal/api/middleware"
	"github.com/marketbase/catalog-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

func createTestToken(userID uuid.UUID, email, role string, duration time.Duration, key []byte, method jwt.SigningMethod) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(method, claims)

	return token.SignedString(key)
}

// withTestLogger seeds the context the way the Logging middleware would.
func withTestLogger(req *http.Request) *http.Request {
	baseLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, baseLogger)

	return req.WithContext(ctx)
}

func TestAuthMiddleware(t *testing.T) {
	// Arrange
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userID := uuid.New()
	userEmail := "test@example.com"

	// Mock handler to check if the request reaches the next handler
	// and to verify the context values.
	mockNextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if user claims are correctly added to the context
		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		require.True(t, ok, "User claims should be in context")
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, userEmail, claims.Email)

		// Check if the logger with userId is in the context
		logger := middleware.LoggerFromContext(r.Context())
		require.NotNil(t, logger)

		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"success": true}`))
		require.NoError(t, err)
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success - Valid Token",
			authHeader: func() string {
				token, err := createTestToken(userID, userEmail, models.RoleCustomer, time.Hour, testJwtKey, jwt.SigningMethodHS256)
				require.NoError(t, err)

				return "Bearer " + token
			}(),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name:           "Fail - Missing Authorization Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Authorization header is required"}}`,
		},
		{
			name:           "Fail - Invalid Authorization Header Format (No Bearer)",
			authHeader:     "InvalidTokenFormat",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid authorization format"}}`,
		},
		{
			name:           "Fail - Invalid Token (Malformed)",
			authHeader:     "Bearer not.a.valid.token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
		{
			name: "Fail - Invalid Token (Wrong Signing Key)",
			authHeader: func() string {
				wrongKey := []byte("different-secret-key-0987654321")
				token, err := createTestToken(userID, userEmail, models.RoleCustomer, time.Hour, wrongKey, jwt.SigningMethodHS256)
				require.NoError(t, err)

				return "Bearer " + token
			}(),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
		{
			name: "Success - Any HMAC Variant Accepted",
			authHeader: func() string {
				token, err := createTestToken(userID, userEmail, models.RoleCustomer, time.Hour, testJwtKey, jwt.SigningMethodHS512)
				require.NoError(t, err)

				return "Bearer " + token
			}(),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name: "Fail - Unsigned Token Rejected",
			authHeader: func() string {
				claims := &models.Claims{
					UserID: userID,
					Email:  userEmail,
					Role:   models.RoleCustomer,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}
				token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
				signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)

				return "Bearer " + signed
			}(),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
		{
			name: "Fail - Expired Token",
			authHeader: func() string {
				token, err := createTestToken(userID, userEmail, models.RoleCustomer, -time.Hour, testJwtKey, jwt.SigningMethodHS256)
				require.NoError(t, err)

				return "Bearer " + token
			}(),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			req = withTestLogger(req)

			rr := httptest.NewRecorder()

			// Create a handler chain: AuthMiddleware -> mockNextHandler
			handlerToTest := authMiddleware.Authenticate(mockNextHandler)

			// Act
			handlerToTest.ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code, "Unexpected status code")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Unexpected response body")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	// Arrange
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"success": true}`))
		require.NoError(t, err)
	})

	tests := []struct {
		name           string
		claims         *models.Claims
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Admin Role",
			claims:         &models.Claims{UserID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name:           "Fail - Customer Role",
			claims:         &models.Claims{UserID: uuid.New(), Email: "user@example.com", Role: models.RoleCustomer},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"success": false, "error": {"code": "FORBIDDEN", "message": "Admin access required"}}`,
		},
		{
			name:           "Fail - No Claims In Context",
			claims:         nil,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Authentication required"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = withTestLogger(req)

			if tc.claims != nil {
				ctx := context.WithValue(req.Context(), middleware.UserContextKey, tc.claims)
				req = req.WithContext(ctx)
			}

			rr := httptest.NewRecorder()

			handlerToTest := authMiddleware.RequireAdmin(nextHandler)

			// Act
			handlerToTest.ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestNewAuthMiddleware(t *testing.T) {
	key := []byte("some-key")
	mw := middleware.NewAuthMiddleware(key)
	assert.NotNil(t, mw, "Middleware should not be nil")
}
