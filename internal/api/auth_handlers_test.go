package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testEnvelope mirrors APIResponse with raw data so each test can decode
// the payload into its own type.
type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []ErrorDetail   `json:"errors"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) testEnvelope {
	var env testEnvelope
	err := json.Unmarshal(rr.Body.Bytes(), &env)
	require.NoError(t, err)
	return env
}

func uniqueName(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// registerTestAccount registers a fresh user through the real handler and
// returns the account with its session token.
func registerTestAccount(t *testing.T) (*models.User, string) {
	username := uniqueName("user")
	payload := RegisterRequest{Username: username, Email: username + "@example.com", Password: "password"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.RegisterHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	env := decodeEnvelope(t, rr)
	var data AuthData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	require.NotNil(t, data.User)
	return data.User, data.Token
}

func TestRegisterHandler(t *testing.T) {
	username := uniqueName("alice")
	payload := RegisterRequest{Username: username, Email: username + "@example.com", Password: "secret1"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.RegisterHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	env := decodeEnvelope(t, rr)
	require.True(t, env.Success)
	require.Equal(t, "Registration successful", env.Message)

	var data AuthData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	require.Equal(t, username, data.User.Username)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "auth_token", cookies[0].Name)
	require.Equal(t, data.Token, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)

	profile, err := testServer.store.GetProfileByUserID(context.Background(), data.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile, "registration should create an empty profile")
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	user, _ := registerTestAccount(t)

	payload := RegisterRequest{Username: uniqueName("other"), Email: user.Email, Password: "password"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.RegisterHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	require.False(t, env.Success)
	require.Equal(t, "Email already registered", env.Message)
}

func TestRegisterHandlerDuplicateUsername(t *testing.T) {
	user, _ := registerTestAccount(t)

	payload := RegisterRequest{Username: user.Username, Email: uniqueName("fresh") + "@example.com", Password: "password"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.RegisterHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "Username already taken", decodeEnvelope(t, rr).Message)
}

func TestRegisterHandlerValidation(t *testing.T) {
	payload := RegisterRequest{Username: "a!", Email: "not-an-email", Password: "short"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.RegisterHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	env := decodeEnvelope(t, rr)
	require.False(t, env.Success)
	require.Equal(t, "Validation error", env.Message)
	require.Len(t, env.Errors, 3)

	fields := make(map[string]bool)
	for _, e := range env.Errors {
		fields[e.Field] = true
	}
	require.True(t, fields["username"])
	require.True(t, fields["email"])
	require.True(t, fields["password"])
}

func TestLoginHandler(t *testing.T) {
	user, _ := registerTestAccount(t)

	payload := LoginRequest{Email: user.Email, Password: "password"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.LoginHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	env := decodeEnvelope(t, rr)
	require.Equal(t, "Login successful", env.Message)

	var data AuthData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	require.Equal(t, user.ID, data.User.ID)
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	user, _ := registerTestAccount(t)

	payload := LoginRequest{Email: user.Email, Password: "wrongpassword"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.LoginHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "Invalid email or password", decodeEnvelope(t, rr).Message)
}

func TestLoginHandlerUnknownEmail(t *testing.T) {
	payload := LoginRequest{Email: "nobody_here@example.com", Password: "password"}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.LoginHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "Invalid email or password", decodeEnvelope(t, rr).Message)
}

func TestGetCurrentUserHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+testUserToken)
	rr := httptest.NewRecorder()

	router := chi.NewRouter()
	router.With(testServer.AuthMiddleware).Get("/api/auth/profile", testServer.GetCurrentUserHandler)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)

	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	require.Equal(t, testUser.ID, user.ID)
	require.Equal(t, testUser.Username, user.Username)
	require.NotContains(t, rr.Body.String(), "password_hash")
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	router := chi.NewRouter()
	router.With(testServer.AuthMiddleware).Get("/api/auth/profile", testServer.GetCurrentUserHandler)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/profile", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Invalid or expired token", decodeEnvelope(t, rr).Message)
	})
}

func TestAuthMiddlewareRejectsDeletedUserToken(t *testing.T) {
	user, token := registerTestAccount(t)

	_, err := testServer.store.GetPool().Exec(context.Background(),
		`DELETE FROM users WHERE id = $1`, user.ID)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.With(testServer.AuthMiddleware).Get("/api/auth/profile", testServer.GetCurrentUserHandler)

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	// A live token for a deleted account must be indistinguishable from a
	// bad token.
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "Invalid or expired token", decodeEnvelope(t, rr).Message)
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+testUserToken)
	rr := httptest.NewRecorder()

	router := chi.NewRouter()
	router.With(testServer.AuthMiddleware).Post("/api/auth/logout", testServer.LogoutHandler)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Logout successful", decodeEnvelope(t, rr).Message)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "auth_token", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}
