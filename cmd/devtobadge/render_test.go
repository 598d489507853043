package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles/foo/bar" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title":"Offline rendering","description":"d","tags":["go"],
			"reading_time_minutes":2,"public_reactions_count":1,
			"user":{"name":"Foo","username":"foo"}}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

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

func TestRender_Stdout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEVTOBADGE_API_BASE_URL", fakeAPI(t).URL)

	out, err := run(t, "render", "--url", "dev.to/foo/bar", "--theme", "dark")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "Offline rendering")
	assert.Contains(t, out, "1 reaction")
	assert.Contains(t, out, `class="theme-dark"`)
}

func TestRender_OutFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DEVTOBADGE_API_BASE_URL", fakeAPI(t).URL)
	path := filepath.Join(dir, "badge.svg")

	_, err := run(t, "render", "--username", "foo", "--slug", "bar", "--hide", "tags", "--out", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")
	assert.NotContains(t, string(b), "#go")
}

func TestRender_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEVTOBADGE_API_BASE_URL", fakeAPI(t).URL)

	_, err := run(t, "render", "--url", "https://example.com/foo/bar")
	assert.ErrorContains(t, err, "bad-host")

	_, err = run(t, "render", "--username", "foo", "--slug", "missing")
	assert.ErrorContains(t, err, "foo/missing")
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "devtobadge dev"))
}
