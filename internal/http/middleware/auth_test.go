package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/platform/ctxutil"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/tokens"
)

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	minter := tokens.NewMinter("test-secret", 15*time.Minute)
	userID := uuid.New()
	sessionID := uuid.New()
	access, err := minter.Mint(userID, sessionID, time.Now().UTC())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	r := gin.New()
	r.Use(NewAuthMiddleware(minter, nil, logger.NewNop()).RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserID != userID || rd.SessionID != sessionID {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid bearer", "Bearer " + access, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	minter := tokens.NewMinter("test-secret", time.Minute)
	access, err := minter.Mint(uuid.New(), uuid.New(), time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	r := gin.New()
	r.Use(NewAuthMiddleware(minter, nil, logger.NewNop()).RequireAuth())
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}
