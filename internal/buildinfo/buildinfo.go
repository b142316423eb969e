// Package buildinfo holds release metadata injected with -ldflags
// "-X github.com/keeponfirst/localbrain/internal/buildinfo.Version=...".
package buildinfo

// Empty for local builds; the version command then falls back to
// runtime/debug build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
