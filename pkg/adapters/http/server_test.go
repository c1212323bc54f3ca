package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hashpad/turing/pkg/adapters/memory"
	"github.com/hashpad/turing/pkg/domain"
	"github.com/hashpad/turing/pkg/observability"
	"github.com/hashpad/turing/pkg/presets"
	"github.com/hashpad/turing/pkg/schema"
	"github.com/hashpad/turing/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	metrics := observability.NewMetrics(nil)
	mgr := session.NewManager(
		session.WithTraceStore(memory.NewStore()),
		session.WithMetrics(metrics),
	)
	return NewHandler(mgr, WithMetrics(metrics))
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func create(t *testing.T, h http.Handler, body any) session.Info {
	t.Helper()
	w := do(t, h, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var info session.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	return info
}

func TestSessions_Lifecycle(t *testing.T) {
	h := newTestHandler(t)

	info := create(t, h, CreateRequest{Preset: presets.AddOne})
	assert.Equal(t, presets.AddOne, info.Machine)
	assert.Equal(t, 0, info.Snapshot.Steps)

	w := do(t, h, http.MethodPost, "/sessions/"+info.ID+"/step?count=100", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, 7, info.Snapshot.Steps)
	assert.Equal(t, domain.VerdictAccepted, info.Snapshot.Verdict())
	assert.Equal(t, "100", info.Snapshot.Trimmed())

	w = do(t, h, http.MethodGet, "/sessions/"+info.ID+"/trace", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trace []domain.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trace))
	assert.Len(t, trace, 8)

	w = do(t, h, http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var infos []session.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	assert.Len(t, infos, 1)

	w = do(t, h, http.MethodDelete, "/sessions/"+info.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/sessions/"+info.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessions_TapeOverride(t *testing.T) {
	h := newTestHandler(t)
	tape := "0"
	info := create(t, h, CreateRequest{Preset: presets.AddOne, Tape: &tape})
	assert.Equal(t, "0", info.Snapshot.Trimmed())
}

func TestSessions_Graph(t *testing.T) {
	h := newTestHandler(t)
	info := create(t, h, CreateRequest{Preset: presets.ZeroNOneN})

	w := do(t, h, http.MethodGet, "/sessions/"+info.ID+"/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR"))
	assert.Contains(t, w.Body.String(), "classDef current")

	w = do(t, h, http.MethodGet, "/sessions/"+info.ID+"/graph?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var g domain.Graph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Len(t, g.Nodes, 6)

	w = do(t, h, http.MethodGet, "/sessions/"+info.ID+"/graph?format=dot", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessions_BadRequests(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"empty", CreateRequest{}, http.StatusBadRequest},
		{"unknown preset", CreateRequest{Preset: "busy beaver"}, http.StatusBadRequest},
		{"invalid definition", map[string]any{"definition": map[string]any{
			"states":      []string{"s"},
			"transitions": []map[string]string{{"state": "s", "read": "0", "write": "0", "move": "R", "next": "nowhere"}},
		}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/sessions", tt.body)
			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}

	w := do(t, h, http.MethodPost, "/sessions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	info := create(t, h, CreateRequest{Preset: presets.AddOne})
	w = do(t, h, http.MethodPost, "/sessions/"+info.ID+"/step?count=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/sessions/missing/step", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidDefinition_ReportsDetails(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/sessions", map[string]any{
		"definition": map[string]any{"states": []string{"s"}, "start": "x", "accept": []string{"y"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid machine definition", resp.Error)
	assert.Len(t, resp.Details, 2)
}

func TestHealthPresetsAndMetrics(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var defs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &defs))
	assert.Len(t, defs, len(presets.Names()))

	create(t, h, CreateRequest{Preset: presets.AddOne})
	w = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "turing_sessions_active 1")

	w = do(t, h, http.MethodOptions, "/sessions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_Session(t *testing.T) {
	metrics := observability.NewMetrics(nil)
	mgr := session.NewManager(session.WithMetrics(metrics))
	srv := httptest.NewServer(NewHandler(mgr))
	defer srv.Close()

	info, err := mgr.Create(context.Background(), mustPreset(t, presets.AddOne))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/"+info.ID+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	buf := make([]byte, 4096)
	n, err := resp.Body.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "event: ping")

	stepResp, err := http.Post(srv.URL+"/sessions/"+info.ID+"/step", "application/json", nil)
	require.NoError(t, err)
	stepResp.Body.Close()

	var got strings.Builder
	for !strings.Contains(got.String(), `"steps":1`) {
		n, err := resp.Body.Read(buf)
		require.NoError(t, err)
		got.Write(buf[:n])
	}
	assert.Contains(t, got.String(), "event: snapshot")
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s1")
	assert.Equal(t, 1, sm.Len("s1"))

	for i := 0; i < 20; i++ {
		sm.Broadcast("s1", "msg")
	}
	assert.Len(t, ch, 10)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Len("s1"))
}

func TestSubscribeEvents_EndsOnDelete(t *testing.T) {
	mgr := session.NewManager()
	srv := httptest.NewServer(NewHandler(mgr))
	defer srv.Close()

	info, err := mgr.Create(context.Background(), mustPreset(t, presets.AddOne))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/"+info.ID+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 4096)
	_, err = resp.Body.Read(buf)
	require.NoError(t, err)

	delReq, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+info.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(delReq)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	_, err = io.ReadAll(resp.Body)
	assert.NoError(t, err, "the stream ends before the client deadline")
	assert.NoError(t, ctx.Err())
}

func TestStreamManager_Close(t *testing.T) {
	sm := NewStreamManager()
	a, cancelA := sm.Subscribe("s1")
	b, _ := sm.Subscribe("s1")
	other, cancelOther := sm.Subscribe("s2")
	defer cancelOther()

	sm.Close("s1")
	assert.Equal(t, 0, sm.Len("s1"))
	assert.Equal(t, 1, sm.Len("s2"))

	_, ok := <-a
	assert.False(t, ok)
	_, ok = <-b
	assert.False(t, ok)

	cancelA()
	sm.Broadcast("s2", "msg")
	assert.Len(t, other, 1)
}

func mustPreset(t *testing.T, name string) *schema.Definition {
	t.Helper()
	def, err := presets.Get(name)
	require.NoError(t, err)
	return def
}
