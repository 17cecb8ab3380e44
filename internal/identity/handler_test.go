package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/todoapi/server/middleware"
)

func newRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	r := gin.New()
	NewHandler(f.svc).RegisterRoutes(r, middleware.Auth(f.svc), nil)
	return r, f
}

func do(r http.Handler, method, path, contentType, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(r http.Handler, body string) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, "/users", "application/json", body, "")
}

func login(r http.Handler, username, pw string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {pw}}.Encode()
	return do(r, http.MethodPost, "/token", "application/x-www-form-urlencoded", form, "")
}

const aliceJSON = `{"username":"alice","password":"correct","first_name":"Alice","last_name":"Liddell","email":"alice@example.com"}`

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHandlerRegister(t *testing.T) {
	r, _ := newRouter(t)

	w := register(r, aliceJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "hashed_password")
	assert.NotContains(t, w.Body.String(), "correct")

	var user PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
	require.NotNil(t, user.Email)
	assert.Equal(t, "alice@example.com", *user.Email)

	w = register(r, aliceJSON)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorCode(t, w))

	w = register(r, `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = register(r, `{"username":"bob","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, w))
}

func TestHandlerLoginAndMe(t *testing.T) {
	r, _ := newRouter(t)
	require.Equal(t, http.StatusCreated, register(r, aliceJSON).Code)

	w := login(r, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))

	w = login(r, "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = login(r, "alice", "correct")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var tok TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	w = do(r, http.MethodGet, "/users/me", "", "", tok.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "hashed_password")
	var me PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice", me.Username)
}

func TestHandlerMeRequiresToken(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "/users/me", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = do(r, http.MethodGet, "/users/me", "", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
}

func TestHandlerDeleteMe(t *testing.T) {
	r, _ := newRouter(t)
	require.Equal(t, http.StatusCreated, register(r, aliceJSON).Code)

	var tok TokenResponse
	require.NoError(t, json.Unmarshal(login(r, "alice", "correct").Body.Bytes(), &tok))

	w := do(r, http.MethodDelete, "/users/me", "", "", tok.AccessToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/users/me", "", "", tok.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the username is free again
	assert.Equal(t, http.StatusCreated, register(r, aliceJSON).Code)
}
