package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcs/internal/menu"
	"tcs/internal/metric"
	"tcs/internal/model"
)

func testTree(t *testing.T) *menu.Tree {
	t.Helper()
	tree, err := menu.Build([]model.ActionRecord{
		{Name: "Games.Pacman", Command: "pacman", Directory: "/opt/pacman"},
		{Name: "Quit", Command: "quit"},
	})
	require.NoError(t, err)
	return tree
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestMenuHandlerAllMenus(t *testing.T) {
	h := New(":0", testTree(t)).Handler()

	rec := get(t, h, "/api/menu")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var views []MenuView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "", views[0].Path)
	assert.Nil(t, views[0].Parent)
	assert.Equal(t, "Games", views[1].Path)
	require.NotNil(t, views[1].Parent)
	assert.Equal(t, "", *views[1].Parent)
}

func TestMenuHandlerSingleMenu(t *testing.T) {
	h := New(":0", testTree(t)).Handler()

	rec := get(t, h, "/api/menu?path=Games")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "Games", raw["path"])

	items := raw["items"].([]any)
	require.Len(t, items, 2)
	back := items[0].(map[string]any)
	assert.Equal(t, "back", back["kind"])
	assert.Equal(t, "", back["target"])

	pacman := items[1].(map[string]any)
	assert.Equal(t, "run", pacman["kind"])
	launch := pacman["launch"].(map[string]any)
	assert.Equal(t, "pacman", launch["command"])
	assert.Equal(t, "/opt/pacman", launch["directory"])
}

func TestMenuHandlerRootByEmptyPath(t *testing.T) {
	h := New(":0", testTree(t)).Handler()

	rec := get(t, h, "/api/menu?path=")
	require.Equal(t, http.StatusOK, rec.Code)

	var v MenuView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "", v.Path)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "Games", v.Items[0].Name)
	assert.Equal(t, "Quit", v.Items[1].Name)
}

func TestMenuHandlerUnknownPath(t *testing.T) {
	h := New(":0", testTree(t)).Handler()
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/menu?path=Nope").Code)
}

func TestMenuHandlerRejectsPost(t *testing.T) {
	h := New(":0", testTree(t)).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/menu", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metric.NewLaunchCounter(reg).Increment("Pacman", "main", metric.ResultOK)
	h := New(":0", testTree(t), WithMetrics(reg)).Handler()

	health := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", health.Body.String())

	metrics := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "tcs_launches_total")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(listener.Addr().String(), testTree(t), WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, listener) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", listener.Addr()))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
