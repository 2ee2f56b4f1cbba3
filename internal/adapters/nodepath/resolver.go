// Package nodepath implements the direct module resolver: the multi-directory
// search that the location cache short-circuits.
package nodepath

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleResolver = (*Resolver)(nil)

// Extensions are tried, in order, when a request does not name a file exactly.
var Extensions = []string{".js", ".json", ".node"}

// builtins are resolved to themselves and never touch the filesystem.
var builtins = []string{
	"assert", "buffer", "child_process", "cluster", "crypto", "dns", "events",
	"fs", "http", "https", "module", "net", "os", "path", "querystring",
	"readline", "stream", "string_decoder", "timers", "tls", "tty", "url",
	"util", "v8", "vm", "worker_threads", "zlib",
}

// Resolver resolves requests the way a CommonJS loader does: relative and
// absolute requests against the caller, bare requests through every
// node_modules directory from the caller up to the filesystem root.
type Resolver struct {
	fs       ports.FileSystem
	fallback string
}

// NewResolver creates a Resolver. fallback is the base directory used when the
// caller is unknown.
func NewResolver(fsys ports.FileSystem, fallback string) *Resolver {
	return &Resolver{fs: fsys, fallback: fallback}
}

// Resolve implements ports.ModuleResolver.
func (r *Resolver) Resolve(ctx context.Context, request string, caller *domain.Caller) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if isBuiltin(request) {
		return request, nil
	}

	base := r.fallback
	callerName := "<unknown>"
	if caller != nil {
		base = caller.BaseDir()
		callerName = caller.Filename
	}

	if isPathRequest(request) {
		target := request
		if !filepath.IsAbs(target) {
			target = filepath.Join(base, filepath.FromSlash(request))
		}
		if resolved, ok := r.loadAsFile(target); ok {
			return resolved, nil
		}
		if resolved, ok := r.loadAsDirectory(target); ok {
			return resolved, nil
		}
		return "", notFound(request, callerName)
	}

	for _, dir := range nodeModulesPaths(base) {
		target := filepath.Join(dir, filepath.FromSlash(request))
		if resolved, ok := r.loadAsFile(target); ok {
			return resolved, nil
		}
		if resolved, ok := r.loadAsDirectory(target); ok {
			return resolved, nil
		}
	}

	return "", notFound(request, callerName)
}

func (r *Resolver) loadAsFile(path string) (string, bool) {
	if r.isFile(path) {
		return path, true
	}
	for _, ext := range Extensions {
		if r.isFile(path + ext) {
			return path + ext, true
		}
	}
	return "", false
}

func (r *Resolver) loadAsDirectory(dir string) (string, bool) {
	manifest := filepath.Join(dir, "package.json")
	if r.isFile(manifest) {
		if data, err := r.fs.ReadFile(manifest); err == nil {
			if main := gjson.GetBytes(data, "main").String(); main != "" {
				target := filepath.Join(dir, filepath.FromSlash(main))
				if resolved, ok := r.loadAsFile(target); ok {
					return resolved, true
				}
				if resolved, ok := r.loadIndex(target); ok {
					return resolved, true
				}
			}
		}
	}
	return r.loadIndex(dir)
}

func (r *Resolver) loadIndex(dir string) (string, bool) {
	for _, ext := range Extensions {
		candidate := filepath.Join(dir, "index"+ext)
		if r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// nodeModulesPaths lists the node_modules directories searched for a bare
// request issued from dir, nearest first.
func nodeModulesPaths(dir string) []string {
	var paths []string
	for current := filepath.Clean(dir); ; {
		if filepath.Base(current) != domain.DependencyDirName {
			paths = append(paths, filepath.Join(current, domain.DependencyDirName))
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return paths
}

func isPathRequest(request string) bool {
	return request == "." || request == ".." ||
		strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../") ||
		filepath.IsAbs(request)
}

func isBuiltin(request string) bool {
	if strings.HasPrefix(request, "node:") {
		return true
	}
	return slices.Contains(builtins, request)
}

func notFound(request, caller string) error {
	err := zerr.Wrap(domain.ErrModuleNotFound, "cannot resolve request")
	err = zerr.With(err, "request", request)
	return zerr.With(err, "caller", caller)
}
