package routes

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SketchShifter/workshelf_backend/internal/config"
	"github.com/SketchShifter/workshelf_backend/internal/controllers"
	"github.com/SketchShifter/workshelf_backend/internal/testutil"
)

type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type createResult struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}

func newTestClient(t *testing.T) *resty.Client {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		Auth: config.AuthConfig{
			JWTSecret:   "e2e-secret",
			TokenExpiry: time.Hour,
			BcryptCost:  bcrypt.MinCost,
		},
	}
	srv := httptest.NewServer(SetupRouter(cfg, testutil.NewDB(t), zap.NewNop()))
	t.Cleanup(srv.Close)

	return resty.New().SetBaseURL(srv.URL + "/api")
}

func signup(t *testing.T, client *resty.Client, username string) string {
	t.Helper()

	var out controllers.TokenResponse
	resp, err := client.R().
		SetBody(map[string]string{"username": username, "password": "password"}).
		SetResult(&out).
		Post("/signup")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	require.NotEmpty(t, out.Token)
	return out.Token
}

func createWork(t *testing.T, client *resty.Client, token string, body controllers.CreateWorkRequest) uint {
	t.Helper()

	var out createResult
	resp, err := client.R().
		SetAuthToken(token).
		SetBody(body).
		SetResult(&out).
		Post("/works")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	require.True(t, out.Success)
	return out.ID
}

func search(t *testing.T, client *resty.Client, token, workType string, tags ...string) []controllers.WorkResponse {
	t.Helper()

	var out []controllers.WorkResponse
	resp, err := client.R().
		SetAuthToken(token).
		SetBody(controllers.SearchRequest{Type: workType, Tags: tags}).
		SetResult(&out).
		Post("/search")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	return out
}

func TestCatalogFlow(t *testing.T) {
	client := newTestClient(t)

	alice := signup(t, client, "alice")
	bob := signup(t, client, "bob")

	w1 := createWork(t, client, alice, controllers.CreateWorkRequest{PixivID: "111", Title: "Sunset", Type: "art", Tags: []string{"sky", "red"}})
	createWork(t, client, alice, controllers.CreateWorkRequest{PixivID: "222", Title: "Sky", Type: "art", Tags: []string{"sky"}})
	createWork(t, client, alice, controllers.CreateWorkRequest{PixivID: "333", Title: "Comic", Type: "manga", Tags: []string{"sky"}})

	t.Run("all tags must match", func(t *testing.T) {
		works := search(t, client, alice, "art", "sky", "red")
		require.Len(t, works, 1)
		assert.Equal(t, w1, works[0].ID)
		assert.Equal(t, "111", works[0].PixivID)
		assert.Equal(t, []string{"red", "sky"}, works[0].Tags)
	})

	t.Run("type is filtered", func(t *testing.T) {
		assert.Len(t, search(t, client, alice, "art", "sky"), 2)
		assert.Len(t, search(t, client, alice, "manga"), 1)
	})

	t.Run("works are scoped to owner", func(t *testing.T) {
		assert.Empty(t, search(t, client, bob, "art"))
	})

	t.Run("empty result is an array", func(t *testing.T) {
		resp, err := client.R().SetAuthToken(alice).
			SetBody(controllers.SearchRequest{Type: "art", Tags: []string{"missing"}}).
			Post("/search")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, resp.String())
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		var out apiError
		resp, err := client.R().SetAuthToken(bob).SetError(&out).Delete("/works/" + strconv.Itoa(int(w1)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
		assert.False(t, out.Success)
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp, err := client.R().SetAuthToken(alice).Delete("/works/" + strconv.Itoa(int(w1)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.JSONEq(t, `{"success":true}`, resp.String())

		assert.Empty(t, search(t, client, alice, "art", "red"))

		resp, err = client.R().SetAuthToken(alice).Delete("/works/" + strconv.Itoa(int(w1)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	})

	t.Run("tags remain suggestable", func(t *testing.T) {
		var names []string
		resp, err := client.R().SetQueryParam("q", "r").SetResult(&names).Get("/tags")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Equal(t, []string{"red"}, names)
	})
}

func TestAuthErrors(t *testing.T) {
	client := newTestClient(t)
	signup(t, client, "alice")

	resp, err := client.R().
		SetBody(map[string]string{"username": "alice", "password": "password"}).
		Post("/signup")
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]string{"username": "alice", "password": "wrong-one"}).
		Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp, err = client.R().SetBody(map[string]string{"username": "alice"}).Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	var token controllers.TokenResponse
	resp, err = client.R().
		SetBody(map[string]string{"username": "alice", "password": "password"}).
		SetResult(&token).
		Post("/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var me controllers.MeResponse
	resp, err = client.R().SetAuthToken(token.Token).SetResult(&me).Get("/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "alice", me.Username)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	client := newTestClient(t)

	cases := []struct {
		method, path string
	}{
		{http.MethodGet, "/me"},
		{http.MethodPost, "/works"},
		{http.MethodPost, "/search"},
		{http.MethodDelete, "/works/1"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, err := client.R().Execute(tc.method, tc.path)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

			resp, err = client.R().SetAuthToken("not-a-token").Execute(tc.method, tc.path)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
		})
	}
}

func TestWorkValidation(t *testing.T) {
	client := newTestClient(t)
	token := signup(t, client, "alice")

	resp, err := client.R().SetAuthToken(token).
		SetBody(map[string]any{"pixivId": "1", "type": "art", "tags": []string{}}).
		Post("/works")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().SetAuthToken(token).
		SetBody(map[string]any{"tags": []string{"a"}}).
		Post("/search")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().SetAuthToken(token).Delete("/works/abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestHealth(t *testing.T) {
	client := newTestClient(t)

	var out map[string]any
	resp, err := client.R().SetResult(&out).Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "ok", out["status"])
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
}
