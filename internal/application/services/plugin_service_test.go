package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	apperrors "github.com/espm-dev/espm/internal/application/errors"
	"github.com/espm-dev/espm/internal/domain/entities"
	"github.com/espm-dev/espm/internal/domain/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pluginRoot = "/data/plugins"

type fakeInstalledSource struct {
	plugins []entities.InstalledPlugin
	err     error
}

func (f *fakeInstalledSource) ListInstalled(context.Context) ([]entities.InstalledPlugin, error) {
	return f.plugins, f.err
}

func (f *fakeInstalledSource) Root() string { return pluginRoot }

type fakeCatalog struct {
	plugins []entities.AvailablePlugin
	err     error
}

func (f *fakeCatalog) ListAvailable(context.Context) ([]entities.AvailablePlugin, error) {
	return f.plugins, f.err
}

func (f *fakeCatalog) Source() string { return "test-catalog" }

type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Download(ctx context.Context, a entities.AvailablePlugin) (entities.InstalledPlugin, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, entities.AvailablePlugin) entities.InstalledPlugin); ok {
		return fn(ctx, a), args.Error(1)
	}
	return args.Get(0).(entities.InstalledPlugin), args.Error(1)
}

type fakeFetcher struct {
	data []byte
	err  error
}

func (f *fakeFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

type fakeFiles struct {
	files     map[string][]byte
	removed   []string
	removeErr error
}

func (f *fakeFiles) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFiles) ReadFile(path string) ([]byte, error) {
	return f.files[path], nil
}

func (f *fakeFiles) RemoveAll(path string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, path)
	return nil
}

type fixture struct {
	installed  *fakeInstalledSource
	catalog    *fakeCatalog
	downloader *MockDownloader
	fetcher    *fakeFetcher
	files      *fakeFiles
	logs       *bytes.Buffer
	svc        *PluginService
}

func newFixture() *fixture {
	f := &fixture{
		installed: &fakeInstalledSource{plugins: []entities.InstalledPlugin{
			entities.NewInstalledPlugin(pluginRoot, "World Forge", "1.0"),
			entities.NewInstalledPlugin(pluginRoot, "Hand Placed", "unknown"),
		}},
		catalog: &fakeCatalog{plugins: []entities.AvailablePlugin{
			{Name: "World Forge", Version: "1.1", IconURL: "https://example.com/wf.png"},
			{Name: "Ember Waste", Version: "2.0", ArchiveURL: "https://example.com/ew.zip"},
		}},
		downloader: &MockDownloader{},
		fetcher:    &fakeFetcher{},
		files:      &fakeFiles{files: map[string][]byte{}},
		logs:       &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f.svc = NewPluginService(f.installed, f.catalog, f.downloader, f.fetcher, f.files, logger)
	return f
}

func TestPluginService_ListPlugins(t *testing.T) {
	ctx := context.Background()

	t.Run("merges both sources", func(t *testing.T) {
		f := newFixture()

		plugins, err := f.svc.ListPlugins(ctx, nil)
		require.NoError(t, err)
		require.Len(t, plugins, 3)

		assert.Equal(t, "Ember Waste", plugins[0].Name())
		assert.Equal(t, entities.AvailableOnly, plugins[0].Kind())
		assert.Equal(t, "Hand Placed", plugins[1].Name())
		assert.Equal(t, entities.InstalledOnly, plugins[1].Kind())
		assert.Equal(t, "World Forge", plugins[2].Name())
		assert.Equal(t, entities.Both, plugins[2].Kind())
	})

	t.Run("applies filter", func(t *testing.T) {
		f := newFixture()

		plugins, err := f.svc.ListPlugins(ctx, services.NewPluginFilter().WithInstalledOnly())
		require.NoError(t, err)
		assert.Len(t, plugins, 2)
	})

	t.Run("catalog failure degrades to installed plugins", func(t *testing.T) {
		f := newFixture()
		f.catalog.err = errors.New("offline")

		plugins, err := f.svc.ListPlugins(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, plugins, 2)
		for _, p := range plugins {
			assert.Equal(t, entities.InstalledOnly, p.Kind())
		}
		assert.Contains(t, f.logs.String(), "catalog unavailable")
	})

	t.Run("scan failure is an error", func(t *testing.T) {
		f := newFixture()
		f.installed.err = errors.New("permission denied")

		_, err := f.svc.ListPlugins(ctx, nil)
		assert.ErrorContains(t, err, "failed to scan plugin directory")
	})
}

func TestPluginService_GetPlugin(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		p, err := newFixture().svc.GetPlugin(ctx, "World Forge")
		require.NoError(t, err)
		assert.Equal(t, entities.Both, p.Kind())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := newFixture().svc.GetPlugin(ctx, "Missing")

		var notFound *entities.PluginNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Missing", notFound.Name)
	})

	t.Run("not found while catalog is down", func(t *testing.T) {
		f := newFixture()
		f.catalog.err = errors.New("offline")

		_, err := f.svc.GetPlugin(ctx, "Ember Waste")

		var catalogErr *apperrors.CatalogError
		assert.ErrorAs(t, err, &catalogErr)
		var notFound *entities.PluginNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestPluginService_Install(t *testing.T) {
	ctx := context.Background()

	t.Run("installs available plugin", func(t *testing.T) {
		f := newFixture()
		f.downloader.On("Download", mock.Anything, mock.MatchedBy(func(a entities.AvailablePlugin) bool {
			return a.Name == "Ember Waste"
		})).Return(entities.NewInstalledPlugin(pluginRoot, "Ember Waste", "2.0"), nil)

		p, err := f.svc.Install(ctx, "Ember Waste")
		require.NoError(t, err)
		assert.True(t, p.IsInstalled())

		path, ok := p.Path()
		require.True(t, ok)
		assert.Equal(t, filepath.Join(pluginRoot, "Ember Waste"), path)
		assert.Contains(t, f.logs.String(), "plugin installed")
		f.downloader.AssertExpectations(t)
	})

	t.Run("reinstalls installed plugin", func(t *testing.T) {
		f := newFixture()
		f.downloader.On("Download", mock.Anything, mock.Anything).
			Return(entities.NewInstalledPlugin(pluginRoot, "World Forge", "1.1"), nil)

		p, err := f.svc.Install(ctx, "World Forge")
		require.NoError(t, err)

		installed, _ := p.Versions()
		assert.Equal(t, "1.1", *installed)
		assert.Contains(t, f.logs.String(), "reinstalling plugin")
	})

	t.Run("installed only plugin is not available", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Install(ctx, "Hand Placed")
		assert.ErrorIs(t, err, entities.ErrNotAvailable)
		f.downloader.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})

	t.Run("download error propagates", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("connection reset")
		f.downloader.On("Download", mock.Anything, mock.Anything).
			Return(entities.InstalledPlugin{}, boom)

		_, err := f.svc.Install(ctx, "Ember Waste")
		assert.ErrorIs(t, err, boom)

		var opErr *apperrors.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "install", opErr.Operation)
	})

	t.Run("catalog failure", func(t *testing.T) {
		f := newFixture()
		f.catalog.err = errors.New("offline")

		_, err := f.svc.Install(ctx, "Ember Waste")
		var catalogErr *apperrors.CatalogError
		assert.ErrorAs(t, err, &catalogErr)
	})
}

func TestPluginService_InstallAll(t *testing.T) {
	ctx := context.Background()

	t.Run("installs every plugin once", func(t *testing.T) {
		f := newFixture()
		f.downloader.On("Download", mock.Anything, mock.Anything).
			Return(func(_ context.Context, a entities.AvailablePlugin) entities.InstalledPlugin {
				return entities.NewInstalledPlugin(pluginRoot, a.Name, a.Version)
			}, nil)

		plugins, err := f.svc.InstallAll(ctx, []string{"Ember Waste", "World Forge", "Ember Waste"}, 2)
		require.NoError(t, err)
		require.Len(t, plugins, 2)
		for _, p := range plugins {
			assert.Equal(t, entities.Both, p.Kind())
		}
		f.downloader.AssertNumberOfCalls(t, "Download", 2)
	})

	t.Run("unknown name fails before downloading", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.InstallAll(ctx, []string{"Ember Waste", "Missing"}, 0)
		var notFound *entities.PluginNotFoundError
		assert.ErrorAs(t, err, &notFound)
		f.downloader.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})

	t.Run("one failure does not stop the others", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("connection reset")
		f.downloader.On("Download", mock.Anything, mock.MatchedBy(func(a entities.AvailablePlugin) bool {
			return a.Name == "World Forge"
		})).Return(entities.InstalledPlugin{}, boom)
		f.downloader.On("Download", mock.Anything, mock.MatchedBy(func(a entities.AvailablePlugin) bool {
			return a.Name == "Ember Waste"
		})).Return(entities.NewInstalledPlugin(pluginRoot, "Ember Waste", "2.0"), nil)

		plugins, err := f.svc.InstallAll(ctx, []string{"World Forge", "Ember Waste"}, 1)
		assert.ErrorIs(t, err, boom)
		require.Len(t, plugins, 1)
		assert.Equal(t, "Ember Waste", plugins[0].Name())
	})
}

func TestPluginService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes installed plugin", func(t *testing.T) {
		f := newFixture()

		p, err := f.svc.Remove(ctx, "World Forge")
		require.NoError(t, err)
		assert.False(t, p.IsInstalled())
		assert.True(t, p.IsAvailable())
		assert.Equal(t, []string{filepath.Join(pluginRoot, "World Forge")}, f.files.removed)
		assert.Contains(t, f.logs.String(), "removing plugin")
	})

	t.Run("not installed", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Remove(ctx, "Ember Waste")
		assert.ErrorIs(t, err, entities.ErrNotInstalled)
		assert.Empty(t, f.files.removed)
	})

	t.Run("removal failure", func(t *testing.T) {
		f := newFixture()
		f.files.removeErr = errors.New("device busy")

		_, err := f.svc.Remove(ctx, "World Forge")
		assert.ErrorIs(t, err, f.files.removeErr)
	})
}

func TestPluginService_Icon(t *testing.T) {
	ctx := context.Background()

	t.Run("local icon", func(t *testing.T) {
		f := newFixture()
		f.files.files[filepath.Join(pluginRoot, "World Forge", "icon.png")] = []byte("local")

		data, ok, err := f.svc.Icon(ctx, "World Forge")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("local"), data)
	})

	t.Run("remote icon", func(t *testing.T) {
		f := newFixture()
		f.fetcher.data = []byte("remote")

		data, ok, err := f.svc.Icon(ctx, "World Forge")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("remote"), data)
	})

	t.Run("no icon is not an error", func(t *testing.T) {
		f := newFixture()

		_, ok, err := f.svc.Icon(ctx, "Hand Placed")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown plugin", func(t *testing.T) {
		_, _, err := newFixture().svc.Icon(ctx, "Missing")
		assert.Error(t, err)
	})
}

func TestPluginService_Outdated(t *testing.T) {
	f := newFixture()

	plugins, err := f.svc.Outdated(context.Background())
	require.NoError(t, err)
	require.Len(t, plugins, 1)
	assert.Equal(t, "World Forge", plugins[0].Name())
}
