package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/services"
)

// stubAuthService accepts exactly one token and maps it to one user id.
type stubAuthService struct {
	token  string
	userID uint
}

func (s *stubAuthService) Register(context.Context, *services.SignupRequest) (*models.User, error) {
	return nil, nil
}

func (s *stubAuthService) Authenticate(context.Context, *services.LoginRequest) (*services.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Verify(token string) (uint, error) {
	if token == s.token {
		return s.userID, nil
	}
	return 0, services.ErrInvalidToken
}

func newAuthTestRouter(auth services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	middleware := NewAuthMiddleware(auth)
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	auth := &stubAuthService{token: "valid-token", userID: 42}
	router := newAuthTestRouter(auth)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"bearer without token", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer valid-token", http.StatusOK},
		{"case-insensitive scheme", "bearer valid-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestRequireAuth_SetsUserID(t *testing.T) {
	auth := &stubAuthService{token: "valid-token", userID: 7}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	var captured uint
	router.GET("/whoami", NewAuthMiddleware(auth).RequireAuth(), func(c *gin.Context) {
		base := NewBaseHandler(nil)
		userID, ok := base.currentUserID(c)
		if !ok {
			return
		}
		captured = userID
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured != 7 {
		t.Errorf("user id = %d, want 7", captured)
	}
}
