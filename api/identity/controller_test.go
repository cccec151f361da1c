package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-chase/identity"
	"github.com/beka-birhanu/vinom-chase/service"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	registerErr error
	registered  RegisterRequest
	user        *dmn.User
	expiresAt   time.Time
}

func (f *fakeAuth) Register(username, displayName, password string) (*dmn.User, error) {
	f.registered = RegisterRequest{Username: username, DisplayName: displayName, Password: password}
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	name := displayName
	if name == "" {
		name = username
	}
	return &dmn.User{ID: uuid.New(), Username: dmn.NormalizeUsername(username), DisplayName: name}, nil
}

func (f *fakeAuth) SignIn(username, password string) (*i.Grant, error) {
	if f.user == nil || f.user.Username != username || password != "right" {
		return nil, service.ErrInvalidCredentials
	}
	return &i.Grant{Player: f.user, Token: "signed", ExpiresAt: f.expiresAt}, nil
}

type fakeTokenizer struct {
	claims dmn.Claims
}

func (f *fakeTokenizer) Issue(dmn.Claims, time.Duration) (string, error) {
	return "good", nil
}

func (f *fakeTokenizer) Verify(token string) (dmn.Claims, error) {
	if token != "good" {
		return dmn.Claims{}, errors.New("bad token")
	}
	return f.claims, nil
}

func performJSON(t *testing.T, h http.Handler, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func newAuthEngine(a *fakeAuth, tokens *fakeTokenizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	server := NewIdentityServer(a)
	server.RegisterPublic(r.Group("/api/v1"))

	protected := r.Group("/api/v1")
	protected.Use(Authoriz(tokens))
	server.RegisterProtected(protected)
	return r
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   any
		status int
	}{
		{name: "created", body: RegisterRequest{Username: "Runner", Password: "pw"}, status: http.StatusCreated},
		{name: "missing fields", body: map[string]string{"username": "runner"}, status: http.StatusBadRequest},
		{name: "weak password", err: dmn.ErrWeakPassword, body: RegisterRequest{Username: "runner", Password: "pw"}, status: http.StatusBadRequest},
		{name: "bad display name", err: dmn.ErrInvalidDisplayName, body: RegisterRequest{Username: "runner", Password: "pw"}, status: http.StatusBadRequest},
		{name: "taken", err: service.ErrUsernameTaken, body: RegisterRequest{Username: "runner", Password: "pw"}, status: http.StatusConflict},
		{name: "storage failure", err: errors.New("mongo down"), body: RegisterRequest{Username: "runner", Password: "pw"}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, newAuthEngine(&fakeAuth{registerErr: tt.err}, &fakeTokenizer{}), http.MethodPost, "/api/v1/auth/register", tt.body, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("returns the new player", func(t *testing.T) {
		auth := &fakeAuth{}
		w := performJSON(t, newAuthEngine(auth, &fakeTokenizer{}), http.MethodPost, "/api/v1/auth/register",
			RegisterRequest{Username: "Runner", DisplayName: "The Runner", Password: "pw"}, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp PlayerResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEqual(t, uuid.Nil, resp.PlayerID)
		assert.Equal(t, "runner", resp.Username)
		assert.Equal(t, "The Runner", resp.DisplayName)
		assert.Equal(t, "The Runner", auth.registered.DisplayName)
	})
}

func TestLogin(t *testing.T) {
	user := &dmn.User{ID: uuid.New(), Username: "runner", DisplayName: "Runner"}
	expires := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	engine := newAuthEngine(&fakeAuth{user: user, expiresAt: expires}, &fakeTokenizer{})

	t.Run("success", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "runner", Password: "right"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.Player.PlayerID)
		assert.Equal(t, "Runner", resp.Player.DisplayName)
		assert.Equal(t, "signed", resp.Token)
		assert.True(t, expires.Equal(resp.ExpiresAt))
	})

	t.Run("wrong password", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "runner", Password: "wrong"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		w := performJSON(t, engine, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "runner"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMe(t *testing.T) {
	claims := dmn.Claims{PlayerID: uuid.New(), Username: "runner", Name: "Runner"}
	engine := newAuthEngine(&fakeAuth{}, &fakeTokenizer{claims: claims})

	w := performJSON(t, engine, http.MethodGet, "/api/v1/auth/me", nil, http.Header{"Authorization": {"Bearer good"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlayerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, PlayerResponse{PlayerID: claims.PlayerID, Username: "runner", DisplayName: "Runner"}, resp)

	w = performJSON(t, engine, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()
	tokens := &fakeTokenizer{claims: dmn.Claims{PlayerID: id, Username: "runner"}}

	r := gin.New()
	r.GET("/me", Authoriz(tokens), func(c *gin.Context) {
		userID, err := UserID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID.String())
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{name: "no token", path: "/me", status: http.StatusUnauthorized},
		{name: "not bearer", path: "/me", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "bad token", path: "/me", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "bearer header", path: "/me", header: "Bearer good", status: http.StatusOK},
		{name: "query token", path: "/me?access_token=good", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}

func TestPlayerClaimsWithoutAuthorization(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := UserID(c)
	assert.ErrorIs(t, err, ErrNoUserClaims)

	c.Set(ContextPlayerClaims, map[string]interface{}{"sub": "7"})
	_, err = PlayerClaims(c)
	assert.ErrorIs(t, err, ErrNoUserClaims)

	c.Set(ContextPlayerClaims, dmn.Claims{Username: "anonymous"})
	_, err = UserID(c)
	assert.ErrorIs(t, err, ErrNoUserClaims)
}
