package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, expires time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID: "u1",
		Name:   "Meera",
		Email:  "meera@tailor.shop",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expires)),
		},
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestJWTAuthBearerHeader(t *testing.T) {
	r := authRouter()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("valid token: %d, body %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthQueryParamFallback(t *testing.T) {
	r := authRouter()

	// EventSource clients cannot set headers.
	req := httptest.NewRequest("GET", "/protected?token="+signToken(t, testSecret, time.Hour), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("query token: %d", w.Code)
	}
}

func TestJWTAuthRejections(t *testing.T) {
	r := authRouter()

	cases := []struct {
		name  string
		setup func(req *http.Request)
	}{
		{"missing token", func(*http.Request) {}},
		{"expired token", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, -time.Minute))
		}},
		{"wrong secret", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", time.Hour))
		}},
		{"malformed header", func(req *http.Request) {
			req.Header.Set("Authorization", "Token abc")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("%s: %d, want 401", tc.name, w.Code)
			}
		})
	}
}
