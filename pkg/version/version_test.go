package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	req := require.New(t)
	info := Get()
	req.NotEmpty(info.Version)
	req.Equal(runtime.Version(), info.GoVersion)
	req.Equal(runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	req.Contains(info.String(), "importsort version "+info.Version)
}

func TestInfo_fill(t *testing.T) {
	tests := []struct {
		name  string
		info  Info
		build debug.BuildInfo
		want  Info
	}{
		{
			name: "build info fills defaults",
			info: Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown"},
			build: debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: Info{Version: "v1.2.3", GitCommit: "abc123", BuildDate: "2024-05-01T10:00:00Z", Modified: true},
		},
		{
			name: "ldflags win",
			info: Info{Version: "v2.0.0", GitCommit: "def456", BuildDate: "today"},
			build: debug.BuildInfo{
				Main:     debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			want: Info{Version: "v2.0.0", GitCommit: "def456", BuildDate: "today"},
		},
		{
			name:  "devel build keeps dev",
			info:  Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown"},
			build: debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want:  Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			tt.info.fill(&tt.build)
			req.Equal(tt.want, tt.info)
		})
	}
}

func TestInfo_String(t *testing.T) {
	req := require.New(t)
	info := Info{Version: "v1.0.0", GitCommit: "abc", BuildDate: "now", Modified: true, GoVersion: "go1.24", Platform: "linux/amd64"}
	req.Equal("importsort version v1.0.0\nGit commit: abc (modified)\nBuild date: now\nGo version: go1.24\nPlatform: linux/amd64", info.String())
}
