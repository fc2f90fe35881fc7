package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/config"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
	"github.com/divyeshvadher/silai-sahayak/internal/service"
	"github.com/divyeshvadher/silai-sahayak/internal/testutil"
)

func setupAuthTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewAuthService(repos.User, config.JWTConfig{
		Secret:             testutil.JWTSecret,
		AccessTokenExpire:  2 * time.Hour,
		RefreshTokenExpire: 168 * time.Hour,
		Issuer:             "silai-sahayak",
	}, zap.NewNop())
	h := NewAuthHandler(svc)

	router.POST("/api/v1/auth/signup", h.Signup)
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/refresh", h.Refresh)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.Me)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestSignupLoginRefreshFlow(t *testing.T) {
	env := setupAuthTest(t)

	signup := map[string]string{
		"email":     "meera@tailor.shop",
		"password":  "stitch-in-time-9",
		"full_name": "Meera Tailor",
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/signup", signup, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: %d, body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	tokens := data["tokens"].(map[string]interface{})
	if tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Fatal("signup returned empty tokens")
	}
	user := data["user"].(map[string]interface{})
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash exposed in response")
	}

	// Duplicate email is a conflict.
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/signup", signup, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: %d, want 409", w.Code)
	}

	// Correct credentials log in.
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]string{
		"email": "meera@tailor.shop", "password": "stitch-in-time-9",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d, body %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	tokens = data["tokens"].(map[string]interface{})

	// The refresh token mints a fresh pair.
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": tokens["refresh_token"].(string),
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: %d, body %s", w.Code, w.Body.String())
	}

	// An access token is not accepted as a refresh token.
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": tokens["access_token"].(string),
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh with access token: %d, want 401", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupAuthTest(t)

	testutil.DoRequest(env.Router, "POST", "/api/v1/auth/signup", map[string]string{
		"email": "amit@tailor.shop", "password": "needle-and-thread", "full_name": "Amit",
	}, "")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]string{
		"email": "amit@tailor.shop", "password": "wrong-password",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password login: %d, want 401", w.Code)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]string{
		"email": "nobody@tailor.shop", "password": "whatever-password",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email login: %d, want 401", w.Code)
	}
}
