package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PassKeeper/internal/config"
	"PassKeeper/internal/handlers"
	"PassKeeper/internal/repo/fs"
	"PassKeeper/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const goodPassword = "Str0ng!Pass123"

type testAPI struct {
	t       *testing.T
	h       *handlers.Handler
	session *service.Session
	cookies []*http.Cookie
}

func newTestAPI(t *testing.T, idle time.Duration) *testAPI {
	t.Helper()
	slots, err := fs.NewSlotFSStore(t.TempDir())
	require.NoError(t, err)
	session, err := service.NewSession(context.Background(), slots)
	require.NoError(t, err)
	locker := service.NewIdleLocker(idle, session.Logout)
	t.Cleanup(locker.Stop)

	cfg := &config.Config{AuthSecret: "test-secret"}
	h := handlers.NewHandler(session, locker, zap.NewNop().Sugar(), cfg)
	return &testAPI{t: t, h: h, session: session}
}

// do выполняет запрос с текущими cookie и запоминает выставленные сервером.
func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	a.h.Router.ServeHTTP(rr, req)
	if set := rr.Result().Cookies(); len(set) > 0 {
		a.cookies = set
	}
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
