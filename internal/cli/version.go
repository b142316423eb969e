package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keeponfirst/localbrain/internal/buildinfo"
	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/notion"
	"github.com/keeponfirst/localbrain/internal/ui"
)

const defaultModulePath = "github.com/keeponfirst/localbrain"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`

	// Formats brain reads and writes.
	LogVersion    string `json:"log_version"`
	NotionVersion string `json:"notion_version"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show brain version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Println(ui.Header("brain " + info.Version))
		rows := [][2]string{
			{"module", info.ModulePath},
			{"commit", info.Commit},
			{"commit_time", info.CommitTime},
			{"go", info.GoVersion},
			{"platform", info.Platform},
			{"log_version", info.LogVersion},
			{"notion_api", info.NotionVersion},
		}
		for _, row := range rows {
			if row[1] == "" {
				continue
			}
			fmt.Printf("%-12s %s\n", row[0]+":", row[1])
		}
		if info.Modified {
			fmt.Println(ui.Warning("built from a modified tree"))
		}
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:       "devel",
		ModulePath:    defaultModulePath,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		LogVersion:    loghome.LogVersion,
		NotionVersion: notion.DefaultVersion,
	}

	bi, ok := readBuildInfo()
	if !ok || bi == nil {
		applyLdflags(&info)
		return info
	}

	if bi.Main.Path != "" {
		info.ModulePath = bi.Main.Path
	}
	info.Version = normalizeVersion(bi.Main.Version)
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}

	vcs := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		vcs[s.Key] = s.Value
	}
	goos, goarch := vcs["GOOS"], vcs["GOARCH"]
	if goos != "" && goarch != "" {
		info.Platform = goos + "/" + goarch
	}
	info.Commit = vcs["vcs.revision"]
	info.CommitTime = vcs["vcs.time"]
	info.Modified = strings.EqualFold(vcs["vcs.modified"], "true")

	applyLdflags(&info)
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

// applyLdflags fills gaps from values injected at release build time.
func applyLdflags(info *versionInfo) {
	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
