// Package version reports build metadata. Values can be stamped at link time:
//
//	go build -ldflags "-X golang-netenforce/internal/pkg/version.tag=$(git describe --tags --abbrev=0)"
//
// Commit and dirty state fall back to the VCS information the Go toolchain
// embeds in module builds.
package version

import (
	"runtime/debug"
)

var (
	commit = ""
	branch = ""
	tag    = "none"
	dirty  = ""
)

type gitInfo struct {
	Commit    string
	Branch    string
	Tag       string
	Dirty     bool
	GoVersion string
}

// GetGitInfo returns the build metadata of the running binary.
func GetGitInfo() gitInfo {
	return resolve(debug.ReadBuildInfo())
}

func resolve(build *debug.BuildInfo, ok bool) (info gitInfo) {
	info = gitInfo{
		Commit: commit,
		Branch: branch,
		Tag:    tag,
		Dirty:  dirty == "dirty",
	}
	defer func() {
		if info.Commit == "" {
			info.Commit = "unknown"
		}
	}()
	if !ok || build == nil {
		return info
	}

	info.GoVersion = build.GoVersion
	for _, setting := range build.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = setting.Value
			}
		case "vcs.modified":
			if dirty == "" {
				info.Dirty = setting.Value == "true"
			}
		}
	}
	return info
}
