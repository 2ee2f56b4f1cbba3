package nodepath_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fastboot/internal/adapters/fs"
	"go.trai.ch/fastboot/internal/adapters/nodepath"
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/zerr"
)

// writeTree creates files relative to root. Empty content is allowed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.js":                                         "",
		"src/app.js":                                       "",
		"src/util.js":                                      "",
		"src/data.json":                                    "{}",
		"src/lib/index.js":                                 "",
		"node_modules/express/package.json":                `{"name":"express","main":"./lib/express"}`,
		"node_modules/express/lib/express.js":              "",
		"node_modules/express/index.js":                    "",
		"node_modules/lodash/package.json":                 `{"name":"lodash"}`,
		"node_modules/lodash/index.js":                     "",
		"node_modules/single.js":                           "",
		"node_modules/express/node_modules/debug/index.js": "",
		"node_modules/@scope/pkg/package.json":             `{"main":"dist"}`,
		"node_modules/@scope/pkg/dist/index.js":            "",
		"node_modules/broken/package.json":                 `{"main":"missing.js"}`,
		"node_modules/broken/index.json":                   "{}",
		"packages/web/node_modules/react/index.js":         "",
	})
	return root
}

func TestResolver_Resolve(t *testing.T) {
	root := newProject(t)
	r := nodepath.NewResolver(fs.NewOSFileSystem(), root)

	appJS := domain.FileCaller(filepath.Join(root, "src", "app.js"))
	tests := []struct {
		name    string
		request string
		caller  *domain.Caller
		want    string
	}{
		{name: "package main", request: "express", caller: domain.DirCaller(root), want: "node_modules/express/lib/express.js"},
		{name: "package index", request: "lodash", caller: appJS, want: "node_modules/lodash/index.js"},
		{name: "single file module", request: "single", caller: appJS, want: "node_modules/single.js"},
		{name: "scoped package main directory", request: "@scope/pkg", caller: appJS, want: "node_modules/@scope/pkg/dist/index.js"},
		{name: "missing main falls back to index", request: "broken", caller: appJS, want: "node_modules/broken/index.json"},
		{name: "package subpath", request: "express/lib/express", caller: appJS, want: "node_modules/express/lib/express.js"},
		{name: "relative with extension", request: "./util", caller: appJS, want: "src/util.js"},
		{name: "relative json", request: "./data", caller: appJS, want: "src/data.json"},
		{name: "relative directory", request: "./lib", caller: appJS, want: "src/lib/index.js"},
		{name: "parent directory", request: "../index.js", caller: appJS, want: "index.js"},
		{
			name:    "nested node_modules first",
			request: "debug",
			caller:  domain.FileCaller(filepath.Join(root, "node_modules", "express", "index.js")),
			want:    "node_modules/express/node_modules/debug/index.js",
		},
		{
			name:    "nearest node_modules wins",
			request: "react",
			caller:  domain.FileCaller(filepath.Join(root, "packages", "web", "src", "main.js")),
			want:    "packages/web/node_modules/react/index.js",
		},
		{name: "unknown caller uses fallback", request: "express", caller: nil, want: "node_modules/express/lib/express.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.request, tt.caller)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.want)), got)
		})
	}
}

func TestResolver_Resolve_Absolute(t *testing.T) {
	root := newProject(t)
	r := nodepath.NewResolver(fs.NewOSFileSystem(), root)

	got, err := r.Resolve(context.Background(), filepath.Join(root, "src", "util"), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "util.js"), got)
}

func TestResolver_Resolve_Builtin(t *testing.T) {
	probes := fs.NewCountingFileSystem(fs.NewOSFileSystem())
	r := nodepath.NewResolver(probes, t.TempDir())

	for _, request := range []string{"fs", "path", "node:crypto"} {
		got, err := r.Resolve(context.Background(), request, nil)
		require.NoError(t, err)
		assert.Equal(t, request, got)
	}
	assert.Equal(t, int64(0), probes.Probes().Lookups())
}

func TestResolver_Resolve_NotFound(t *testing.T) {
	root := newProject(t)
	r := nodepath.NewResolver(fs.NewOSFileSystem(), root)
	caller := domain.FileCaller(filepath.Join(root, "src", "app.js"))

	for _, request := range []string{"missing", "./missing"} {
		_, err := r.Resolve(context.Background(), request, caller)
		require.ErrorIs(t, err, domain.ErrModuleNotFound)

		zErr, ok := err.(*zerr.Error)
		require.True(t, ok, "expected *zerr.Error, got %T", err)
		assert.Equal(t, request, zErr.Metadata()["request"])
		assert.Equal(t, caller.Filename, zErr.Metadata()["caller"])
	}
}

func TestResolver_Resolve_Cancelled(t *testing.T) {
	r := nodepath.NewResolver(fs.NewOSFileSystem(), t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "express", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolver_Resolve_SearchIsProbed(t *testing.T) {
	root := newProject(t)
	probes := fs.NewCountingFileSystem(fs.NewOSFileSystem())
	r := nodepath.NewResolver(probes, root)

	_, err := r.Resolve(context.Background(), "react", domain.FileCaller(filepath.Join(root, "packages", "web", "src", "main.js")))
	require.NoError(t, err)

	// packages/web/src/node_modules is probed before packages/web/node_modules.
	assert.Greater(t, probes.Probes().Stat, int64(4))
}
