package cli

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/keeponfirst/localbrain/internal/buildinfo"
	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/notion"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prev })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func stubLdflags(t *testing.T, version, commit, date string) {
	t.Helper()
	pv, pc, pd := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = pv, pc, pd })
	buildinfo.Version, buildinfo.Commit, buildinfo.Date = version, commit, date
}

func TestCurrentVersionInfo(t *testing.T) {
	runtimePlatform := runtime.GOOS + "/" + runtime.GOARCH

	tests := []struct {
		name    string
		bi      *debug.BuildInfo
		ldflags [3]string
		want    versionInfo
	}{
		{
			name: "vcs settings",
			bi: &debug.BuildInfo{
				GoVersion: "go1.24.1",
				Main:      debug.Module{Path: defaultModulePath, Version: "v0.4.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2026-03-01T09:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
					{Key: "GOOS", Value: "windows"},
					{Key: "GOARCH", Value: "amd64"},
				},
			},
			want: versionInfo{
				Version:    "v0.4.0",
				ModulePath: defaultModulePath,
				Commit:     "abc123",
				CommitTime: "2026-03-01T09:00:00Z",
				Modified:   true,
				GoVersion:  "go1.24.1",
				Platform:   "windows/amd64",
			},
		},
		{
			name: "no build info",
			want: versionInfo{
				Version:    "devel",
				ModulePath: defaultModulePath,
				GoVersion:  runtime.Version(),
				Platform:   runtimePlatform,
			},
		},
		{
			name:    "ldflags fill a devel build",
			bi:      &debug.BuildInfo{GoVersion: "go1.24.1", Main: debug.Module{Path: defaultModulePath, Version: "(devel)"}},
			ldflags: [3]string{"v1.2.3", "feedface", "2026-05-05"},
			want: versionInfo{
				Version:    "v1.2.3",
				ModulePath: defaultModulePath,
				Commit:     "feedface",
				CommitTime: "2026-05-05",
				GoVersion:  "go1.24.1",
				Platform:   runtimePlatform,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.bi)
			stubLdflags(t, tt.ldflags[0], tt.ldflags[1], tt.ldflags[2])

			want := tt.want
			want.LogVersion = loghome.LogVersion
			want.NotionVersion = notion.DefaultVersion
			if got := currentVersionInfo(); got != want {
				t.Fatalf("currentVersionInfo() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	withJSONOutput(t)
	stubLdflags(t, "", "", "")
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.24.1",
		Main:      debug.Module{Path: defaultModulePath, Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "GOOS", Value: "darwin"},
			{Key: "GOARCH", Value: "arm64"},
		},
	})

	out := captureStdout(t, func() {
		if err := versionCmd.RunE(versionCmd, nil); err != nil {
			t.Fatalf("versionCmd.RunE: %v", err)
		}
	})

	var resp struct {
		OK   bool        `json:"ok"`
		Data versionInfo `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("parse JSON: %v; out=%s", err, out)
	}
	if !resp.OK || resp.Data.Version != "devel" || resp.Data.Commit != "deadbeef" || resp.Data.Platform != "darwin/arm64" {
		t.Fatalf("unexpected response: %s", out)
	}
	if resp.Data.LogVersion != loghome.LogVersion {
		t.Errorf("log_version = %q, want %q", resp.Data.LogVersion, loghome.LogVersion)
	}
}
