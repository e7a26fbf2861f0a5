package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordboard/internal/model"
	"recordboard/internal/remote"
	"recordboard/internal/sandbox"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	old := stdout
	stdout = buf
	t.Cleanup(func() { stdout = old })
	return buf
}

func startSandbox(t *testing.T) (string, *sandbox.Store) {
	t.Helper()
	store := sandbox.NewStore(sandbox.DemoUsers())
	srv := httptest.NewServer(sandbox.NewServer(store))
	t.Cleanup(srv.Close)
	return srv.URL + sandbox.CollectionPath, store
}

func TestListCommand(t *testing.T) {
	upstream, _ := startSandbox(t)
	out := captureStdout(t)

	require.NoError(t, Run([]string{"--upstream", upstream, "list"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[1], "Leanne Graham")
	assert.Contains(t, lines[10], "Clementina DuBuque")
}

func TestCreateCommand(t *testing.T) {
	upstream, store := startSandbox(t)
	out := captureStdout(t)

	require.NoError(t, Run([]string{"-u", upstream, "create", "-n", "Ada", "-e", "ada@example.com"}))

	assert.Contains(t, out.String(), "ada@example.com")
	records := store.List()
	require.Len(t, records, 11)
	assert.Equal(t, model.Record{ID: 11, Name: "Ada", Email: "ada@example.com"}, records[10])
}

func TestUpdateCommandKeepsUnsetFields(t *testing.T) {
	upstream, store := startSandbox(t)
	captureStdout(t)

	require.NoError(t, Run([]string{"-u", upstream, "update", "--id", "2", "-n", "Ervin H."}))

	records := store.List()
	assert.Equal(t, model.Record{ID: 2, Name: "Ervin H.", Email: "Shanna@melissa.tv"}, records[1])
}

func TestUpdateCommandUnknownID(t *testing.T) {
	upstream, _ := startSandbox(t)
	captureStdout(t)

	err := Run([]string{"-u", upstream, "update", "--id", "77", "-n", "nobody"})
	assert.Error(t, err)
}

func TestDeleteCommand(t *testing.T) {
	upstream, store := startSandbox(t)
	out := captureStdout(t)

	require.NoError(t, Run([]string{"-u", upstream, "delete", "--id", "1"}))
	assert.NotContains(t, out.String(), "Leanne Graham")
	assert.Len(t, store.List(), 9)

	err := Run([]string{"-u", upstream, "delete", "--id", "1"})
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestHelp(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, Run([]string{"--help"}))
	assert.Contains(t, out.String(), "Usage")
}

func TestResolveConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	doc := "upstreamURL: http://upstream.local/users\nrequestTimeout: 3s\naddr: 0.0.0.0:9000\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := resolveConfig(context.Background(), &Options{Config: path})
	require.NoError(t, err)
	assert.Equal(t, "http://upstream.local/users", cfg.UpstreamURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)

	cfg, err = resolveConfig(context.Background(), &Options{
		Config:   path,
		Upstream: "http://override.local/users",
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://override.local/users", cfg.UpstreamURL)
	assert.Equal(t, time.Second, cfg.RequestTimeout)

	_, err = resolveConfig(context.Background(), &Options{Upstream: "not a url"})
	assert.Error(t, err)
}

func TestPrintTable(t *testing.T) {
	buf := &bytes.Buffer{}
	err := printTable(buf, model.State{Records: []model.Record{
		{ID: 5, Name: "tab\tname", Email: "a@b.c"},
		{ID: 9, Name: "second", Email: "d@e.f"},
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"#", "Name", "Email"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "tab name")
	assert.True(t, strings.HasPrefix(lines[2], "2 "))
	assert.True(t, strings.HasSuffix(lines[2], "d@e.f"))
}

func TestConfiguredHeadersReachUpstream(t *testing.T) {
	var accept, client string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		client = r.Header.Get("X-Board-Client")
		io.WriteString(w, "[]")
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "board.yaml")
	doc := "upstreamURL: " + srv.URL + "/users\nheaders:\n  X-Board-Client: cli-test\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	out := captureStdout(t)

	require.NoError(t, Run([]string{"-f", path, "list"}))
	assert.Equal(t, "application/json", accept)
	assert.Equal(t, "cli-test", client)
	assert.Equal(t, []string{"#", "Name", "Email"}, strings.Fields(strings.TrimSpace(out.String())))
}
