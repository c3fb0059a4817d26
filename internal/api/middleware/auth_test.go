package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
	"github.com/vietanh2810/dining-pos-api/internal/pkg/jwthelper"
)

const testKey = "test-key"

func newRouter(handler gin.HandlerFunc, got *domain.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handler, func(ctx *gin.Context) {
		*got = CallerFromContext(ctx)
		ctx.Status(http.StatusOK)
	})

	return router
}

func bearer(t *testing.T, accountID uint) string {
	t.Helper()
	token, err := jwthelper.GenerateToken([]byte(testKey), accountID, "test")
	require.NoError(t, err)

	return "Bearer " + token
}

func TestVerifyJWT(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		query         string
		wantStatus    int
		wantAccount   uint
	}{
		{name: "valid header", authorization: bearer(t, 9), wantStatus: http.StatusOK, wantAccount: 9},
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authorization: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad signature", authorization: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "query token", query: "?token=" + bearer(t, 4)[len("Bearer "):], wantStatus: http.StatusOK, wantAccount: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Caller
			router := newRouter(NewAuthenticator(testKey).VerifyJWT(), &got)

			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, got.AccountID)
				assert.Equal(t, tt.wantAccount, *got.AccountID)
			}
		})
	}
}

func TestIdentifyCaller(t *testing.T) {
	guestID := uuid.New()

	t.Run("anonymous", func(t *testing.T) {
		var got domain.Caller
		router := newRouter(NewAuthenticator(testKey).IdentifyCaller(), &got)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, got.AccountID)
		assert.Nil(t, got.GuestID)
	})

	t.Run("guest and account", func(t *testing.T) {
		var got domain.Caller
		router := newRouter(NewAuthenticator(testKey).IdentifyCaller(), &got)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, 3))
		req.Header.Set(GuestTokenHeader, guestID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.AccountID)
		require.NotNil(t, got.GuestID)
		assert.Equal(t, uint(3), *got.AccountID)
		assert.Equal(t, guestID, *got.GuestID)
	})

	t.Run("malformed guest token", func(t *testing.T) {
		var got domain.Caller
		router := newRouter(NewAuthenticator(testKey).IdentifyCaller(), &got)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(GuestTokenHeader, "not-a-uuid")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid bearer", func(t *testing.T) {
		var got domain.Caller
		router := newRouter(NewAuthenticator("other-key").IdentifyCaller(), &got)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, 3))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
