package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashpad/turing/pkg/adapters/memory"
	"github.com/hashpad/turing/pkg/domain"
	"github.com/hashpad/turing/pkg/presets"
	"github.com/hashpad/turing/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(session.NewManager(session.WithTraceStore(memory.NewStore())), nil)
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestTools_SessionLifecycle(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	created, err := s.handleCreateSession(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"preset": presets.AddOne,
		"tape":   "1",
	})
	require.NoError(t, err)
	id := created.Session.ID
	assert.Equal(t, "1", created.Tape)
	assert.Equal(t, domain.VerdictRunning, created.Verdict)

	stepped, err := s.handleStep(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"session_id": id,
		"count":      float64(50),
	})
	require.NoError(t, err)
	assert.Equal(t, "10", stepped.Tape)
	assert.Equal(t, domain.VerdictAccepted, stepped.Verdict)

	inspected, err := s.handleInspect(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": id})
	require.NoError(t, err)
	assert.Equal(t, stepped.Session.Snapshot, inspected.Session.Snapshot)

	res, err := s.handleGetGraph(ctx, toolRequest(map[string]any{"session_id": id}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resultText(t, res), "graph LR"))

	res, err = s.handleGetGraph(ctx, toolRequest(map[string]any{"session_id": id, "format": "json"}))
	require.NoError(t, err)
	var g domain.Graph
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &g))
	assert.Len(t, g.Nodes, 7)

	res, err = s.handleGetTrace(ctx, toolRequest(map[string]any{"session_id": id}))
	require.NoError(t, err)
	var trace []domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &trace))
	assert.Len(t, trace, stepped.Session.Snapshot.Steps+1)

	res, err = s.handleDeleteSession(ctx, toolRequest(map[string]any{"session_id": id}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	_, err = s.handleInspect(ctx, mcp.CallToolRequest{}, map[string]interface{}{"session_id": id})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestCreateSession_FromDefinition(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	fromYAML, err := s.handleCreateSession(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition_yaml": "name: flip\ntape: \"0\"\nstates: [s, f]\naccept: [f]\ntransitions:\n  - {state: s, read: \"0\", write: \"1\", move: N, next: f}\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "flip", fromYAML.Session.Machine)

	fromObject, err := s.handleCreateSession(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition": map[string]interface{}{
			"name":   "object",
			"states": []interface{}{"s"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "object", fromObject.Session.Machine)
}

func TestCreateSession_Rejects(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"nothing", map[string]interface{}{}},
		{"both", map[string]interface{}{"preset": presets.AddOne, "definition_yaml": "states: [s]"}},
		{"unknown preset", map[string]interface{}{"preset": "busy beaver"}},
		{"invalid", map[string]interface{}{"definition_yaml": "states: []"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleCreateSession(ctx, mcp.CallToolRequest{}, tt.args)
			assert.Error(t, err)
		})
	}
}

func TestListPresetsAndResource(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	res, err := s.handleListPresets(ctx, mcp.CallToolRequest{})
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &names))
	assert.Equal(t, presets.Names(), names)

	contents, err := s.readPresets(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, PresetsURI, text.URI)
	assert.Contains(t, text.Text, presets.ZeroNOneN)
}

func TestGetGraph_UnknownSession(t *testing.T) {
	s := newTestServer()
	res, err := s.handleGetGraph(context.Background(), toolRequest(map[string]any{"session_id": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
