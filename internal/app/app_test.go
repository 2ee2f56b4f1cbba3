package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fastboot/internal/adapters/fs"
	"go.trai.ch/fastboot/internal/adapters/telemetry"
	"go.trai.ch/fastboot/internal/app"
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	root        string
	cacheFile   string
	startupFile string
	expressPath string

	loader *mocks.MockConfigLoader
	direct *mocks.MockModuleResolver
	probes *mocks.MockProbeCounter
	log    *mocks.MockLogger
	app    *app.App
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	root := t.TempDir()
	expressPath := filepath.Join(root, "node_modules", "express", "index.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(expressPath), 0o750))
	require.NoError(t, os.WriteFile(expressPath, []byte("module.exports = {}\n"), 0o600))

	f := &appFixture{
		root:        root,
		cacheFile:   filepath.Join(root, "tmp", domain.CacheFileName),
		startupFile: filepath.Join(root, domain.DependencyDirName, domain.StartupFileName),
		expressPath: expressPath,
		loader:      mocks.NewMockConfigLoader(ctrl),
		direct:      mocks.NewMockModuleResolver(ctrl),
		probes:      mocks.NewMockProbeCounter(ctrl),
		log:         mocks.NewMockLogger(ctrl),
	}
	f.loader.EXPECT().Load(root, "").Return(domain.Options{}, nil).AnyTimes()
	f.log.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.log.EXPECT().Info(gomock.Any()).AnyTimes()

	f.app = app.New(f.loader, f.direct, fs.NewOSFileSystem(), f.probes, f.log, telemetry.NewNoOpTracer())
	return f
}

func (f *appFixture) startOptions() app.StartOptions {
	return app.StartOptions{
		Cwd: f.root,
		Overrides: domain.Options{
			CacheFile:  f.cacheFile,
			VersionTag: "1.0.0",
		},
	}
}

func (f *appFixture) expectExpress(times int) {
	f.direct.EXPECT().
		Resolve(gomock.Any(), "express", domain.DirCaller(f.root)).
		Return(f.expressPath, nil).
		Times(times)
}

func TestApp_StartTwice(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	err := f.app.Start(ctx, f.startOptions())
	require.ErrorIs(t, err, domain.ErrAlreadyStarted)

	f.app.Discard()
}

func TestApp_NotStarted(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	require.NoError(t, f.app.Stop(ctx))

	_, err := f.app.Stats()
	require.ErrorIs(t, err, domain.ErrNotStarted)
	require.ErrorIs(t, f.app.SaveCache(ctx), domain.ErrNotStarted)
	require.ErrorIs(t, f.app.SaveStartupSeed(ctx), domain.ErrNotStarted)
	require.ErrorIs(t, f.app.SaveAll(ctx), domain.ErrNotStarted)

	f.expectExpress(1)
	got, err := f.app.Resolve(ctx, "express", domain.DirCaller(f.root))
	require.NoError(t, err)
	assert.Equal(t, f.expressPath, got)
}

func TestApp_MissThenHitAcrossRuns(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	caller := domain.DirCaller(f.root)

	f.expectExpress(1)

	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	got, err := f.app.Resolve(ctx, "express", caller)
	require.NoError(t, err)
	assert.Equal(t, f.expressPath, got)

	stats, err := f.app.Stats()
	require.NoError(t, err)
	assert.Equal(t, domain.Counters{CacheMiss: 1}, stats.Counters)
	require.NoError(t, f.app.Stop(ctx))

	data, err := os.ReadFile(f.cacheFile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_cacheKiller":"1.0.0","./:express":"node_modules/express/index.js"}`, string(data))

	// A second run serves the request from the cache file.
	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	got, err = f.app.Resolve(ctx, "express", caller)
	require.NoError(t, err)
	assert.Equal(t, f.expressPath, got)

	stats, err = f.app.Stats()
	require.NoError(t, err)
	assert.Equal(t, domain.Counters{CacheHit: 1}, stats.Counters)
	assert.Equal(t, "1.0.0", stats.VersionTag)
	assert.Equal(t, domain.StatusLoaded(domain.CaptionCache, f.cacheFile), stats.Loading.CacheFile)
	require.NoError(t, f.app.Stop(ctx))
}

func TestApp_StopUninstallsCache(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	f.expectExpress(2)

	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	_, err := f.app.Resolve(ctx, "express", domain.DirCaller(f.root))
	require.NoError(t, err)
	require.NoError(t, f.app.Stop(ctx))

	// After Stop the request reaches the direct resolver unchanged.
	_, err = f.app.Resolve(ctx, "express", domain.DirCaller(f.root))
	require.NoError(t, err)
}

func TestApp_ResolveErrorPassesThrough(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	notFound := errors.Join(domain.ErrModuleNotFound, errors.New("missing"))

	f.direct.EXPECT().Resolve(gomock.Any(), "missing", gomock.Any()).Return("", notFound)

	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	_, err := f.app.Resolve(ctx, "missing", domain.DirCaller(f.root))
	require.ErrorIs(t, err, domain.ErrModuleNotFound)

	stats, err := f.app.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Total())
	f.app.Discard()
}

func TestApp_SaveAll(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	f.expectExpress(1)

	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	_, err := f.app.Resolve(ctx, "express", domain.DirCaller(f.root))
	require.NoError(t, err)
	require.NoError(t, f.app.SaveAll(ctx))
	f.app.Discard()

	for _, path := range []string{f.cacheFile, f.startupFile} {
		data, err := os.ReadFile(path) //nolint:gosec // Test path
		require.NoError(t, err)
		assert.JSONEq(t, `{"_cacheKiller":"1.0.0","./:express":"node_modules/express/index.js"}`, string(data))
	}
}

func TestApp_StartupSeedUsedWhenCacheMissing(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	f.expectExpress(1)

	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	_, err := f.app.Resolve(ctx, "express", domain.DirCaller(f.root))
	require.NoError(t, err)
	require.NoError(t, f.app.SaveStartupSeed(ctx))
	f.app.Discard()

	require.NoError(t, f.app.Start(ctx, f.startOptions()))
	stats, err := f.app.Stats()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotFound(domain.CaptionCache, f.cacheFile), stats.Loading.CacheFile)
	assert.Equal(t, domain.StatusLoaded(domain.CaptionStartup, f.startupFile), stats.Loading.StartupFile)
	assert.Equal(t, 1, stats.Entries)
	f.app.Discard()
}

func TestApp_StatusCallback(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	var messages []string
	so := f.startOptions()
	so.Overrides.StatusCallback = func(message string) {
		messages = append(messages, message)
	}

	require.NoError(t, f.app.Start(ctx, so))
	f.app.Discard()

	assert.Equal(t, []string{
		domain.StatusNotFound(domain.CaptionCache, f.cacheFile),
		domain.StatusNotFound(domain.CaptionStartup, f.startupFile),
	}, messages)
}

func TestApp_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("/project", "broken.yaml").Return(domain.Options{}, domain.ErrConfigParseFailed)

	a := app.New(
		loader,
		mocks.NewMockModuleResolver(ctrl),
		mocks.NewMockFileSystem(ctrl),
		mocks.NewMockProbeCounter(ctrl),
		mocks.NewMockLogger(ctrl),
		telemetry.NewNoOpTracer(),
	)

	err := a.Start(context.Background(), app.StartOptions{Cwd: "/project", ConfigPath: "broken.yaml"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_DebouncedSave(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newAppFixture(t)
		ctx := context.Background()

		f.expectExpress(1)

		so := f.startOptions()
		so.Overrides.SaveTimeout = 200 * time.Millisecond
		require.NoError(t, f.app.Start(ctx, so))

		_, err := f.app.Resolve(ctx, "express", domain.DirCaller(f.root))
		require.NoError(t, err)
		assert.NoFileExists(t, f.cacheFile)

		time.Sleep(250 * time.Millisecond)
		synctest.Wait()
		assert.FileExists(t, f.cacheFile)

		f.app.Discard()
	})
}

func TestApp_Clean(t *testing.T) {
	tests := []struct {
		name        string
		opts        app.CleanOptions
		keepStartup bool
	}{
		{name: "cache only", opts: app.CleanOptions{}, keepStartup: true},
		{name: "cache and startup", opts: app.CleanOptions{Startup: true}, keepStartup: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppFixture(t)
			for _, path := range []string{f.cacheFile, f.startupFile} {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
				require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
			}

			require.NoError(t, f.app.Clean(context.Background(), f.startOptions(), tt.opts))

			assert.NoFileExists(t, f.cacheFile)
			if tt.keepStartup {
				assert.FileExists(t, f.startupFile)
			} else {
				assert.NoFileExists(t, f.startupFile)
			}
		})
	}
}

func TestApp_CleanMissingFiles(t *testing.T) {
	f := newAppFixture(t)
	require.NoError(t, f.app.Clean(context.Background(), f.startOptions(), app.CleanOptions{Startup: true}))
}

func TestApp_Probes(t *testing.T) {
	f := newAppFixture(t)
	want := domain.Probes{Exists: 3, Stat: 7}
	f.probes.EXPECT().Probes().Return(want)

	assert.Equal(t, want, f.app.Probes())
}
