package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet_FromBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/espm-dev/espm", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
		},
	})

	info := Get()
	assert.Equal(t, "v0.3.1", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-10-01T12:00:00Z", info.BuildDate)
	assert.Contains(t, info.Full(), "v0.3.1 (abc123)")
}

func TestGet_DevelBuild(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.Commit)
}

func TestGet_LinkerFlagsWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}})

	orig := Version
	Version = "v1.0.0"
	t.Cleanup(func() { Version = orig })

	assert.Equal(t, "v1.0.0", Get().Version)
}

func TestGet_NoBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)

	assert.Equal(t, "dev", Get().Version)
}
