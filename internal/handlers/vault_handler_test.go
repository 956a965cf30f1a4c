package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"PassKeeper/internal/handlers"
	"PassKeeper/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_SetupLoginLogout(t *testing.T) {
	api := newTestAPI(t, 0)

	rr := api.do(http.MethodGet, "/api/vault/status", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	st := decode[handlers.StatusResponse](t, rr)
	assert.Equal(t, "uninitialized", st.State)
	assert.False(t, st.SetUp)

	rr = api.do(http.MethodPost, "/api/vault/login", map[string]string{"password": goodPassword})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = api.do(http.MethodPost, "/api/vault/setup", map[string]string{"password": "short"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = api.do(http.MethodPost, "/api/vault/setup", map[string]string{"password": goodPassword})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NotEmpty(t, api.cookies)

	rr = api.do(http.MethodGet, "/api/vault/status", nil)
	st = decode[handlers.StatusResponse](t, rr)
	assert.Equal(t, "unlocked", st.State)
	assert.True(t, st.Authenticated)

	rr = api.do(http.MethodPost, "/api/vault/setup", map[string]string{"password": goodPassword})
	assert.Equal(t, http.StatusConflict, rr.Code)

	stale := api.cookies
	rr = api.do(http.MethodPost, "/api/vault/logout", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, service.StateLocked, api.session.State())

	// старый токен после выхода не принимается
	api.cookies = stale
	rr = api.do(http.MethodGet, "/api/entries", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = api.do(http.MethodPost, "/api/vault/login", map[string]string{"password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = api.do(http.MethodPost, "/api/vault/login", map[string]string{"password": goodPassword})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = api.do(http.MethodGet, "/api/entries", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestVault_InvalidJSON(t *testing.T) {
	api := newTestAPI(t, 0)
	rr := api.do(http.MethodPost, "/api/vault/setup", "{")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVault_IdleAutoLockRevokesToken(t *testing.T) {
	api := newTestAPI(t, 50*time.Millisecond)

	rr := api.do(http.MethodPost, "/api/vault/setup", map[string]string{"password": goodPassword})
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Eventually(t, func() bool {
		return api.session.State() == service.StateLocked
	}, 2*time.Second, 10*time.Millisecond)

	rr = api.do(http.MethodGet, "/api/entries", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
