package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slayervault/internal/particles"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParticlesCommand(t *testing.T) {
	out, err := run(t, "particles", "--seed", "doma-ice", "--count", "3", "--preset", "ice")
	require.NoError(t, err)

	var got []particles.Particle
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	ice, _ := particles.PresetFor("ice")
	assert.Equal(t, particles.GenerateWith(3, "doma-ice", ice), got)

	_, err = run(t, "particles", "--preset", "glitter")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestQueryCommandSendsFilters(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/characters", r.URL.Path)
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"total":1,"items":[{"slug":"doma","name":"Doma","faction":"demon","rank":"Upper Moon 2","tags":[],"images":{"posterUrl":"","galleryUrls":[]}}]}`))
	}))
	defer srv.Close()

	out, err := run(t, "--api", srv.URL, "query", "--faction", "demons", "--tag", "Ice,Upper Moon", "--sort", "rank", "-q", "do")
	require.NoError(t, err)
	assert.Contains(t, out, "doma")
	assert.Contains(t, out, "1 characters")

	assert.Equal(t, "Demons", got.Get("faction"))
	assert.Equal(t, "Rank", got.Get("sort"))
	assert.Equal(t, "do", got.Get("q"))
	assert.Equal(t, "Ice,Upper Moon", got.Get("tags"))
}

func TestLoginAndOverrideSet(t *testing.T) {
	var overrideAuth string
	var overrideBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/login":
			_, _ = w.Write([]byte(`{"token":"tok-123","expires_at":"2030-01-01T00:00:00Z"}`))
		case "/overrides":
			overrideAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&overrideBody)
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tokenPath := filepath.Join(t.TempDir(), "token.json")

	_, err := run(t, "--api", srv.URL, "--token", tokenPath, "override", "set", "doma", "--poster", "X")
	assert.ErrorContains(t, err, "not logged in")

	out, err := run(t, "--api", srv.URL, "--token", tokenPath, "login", "--password", "hunter2")
	require.NoError(t, err)
	assert.Contains(t, out, "2030-01-01")

	_, err = run(t, "--api", srv.URL, "--token", tokenPath, "override", "set", "doma", "--poster", "X", "--gallery", "a", "--gallery", "b")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", overrideAuth)
	assert.Equal(t, "doma", overrideBody["slug"])
	assert.Equal(t, map[string]any{"posterUrl": "X", "galleryUrls": []any{"a", "b"}}, overrideBody["images"])

	_, err = run(t, "--token", tokenPath, "logout")
	require.NoError(t, err)
	token, err := readToken(tokenPath)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestDoJSONReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer srv.Close()

	err := doJSON(t.Context(), srv.Client(), http.MethodPost, srv.URL+"/overrides", "", map[string]string{}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Unauthorized"))
}

func TestWebsocketURL(t *testing.T) {
	got, err := websocketURL("https://vault.example:8443/api", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "wss://vault.example:8443/ws", got)

	got, err = websocketURL("http://localhost:8080", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/ws", got)
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, []byte(`{"type":"overrides.reload"}`), true)
	assert.Contains(t, buf.String(), "\n  \"type\"")

	buf.Reset()
	printEvent(&buf, []byte("not json"), true)
	assert.Equal(t, "not json\n", buf.String())
}
