package version

import (
	"runtime/debug"
	"strings"
)

// Set through -ldflags at release time.
var (
	Version = ""
	Commit  = ""
)

// Resolve returns the release version plus the build commit, falling back
// to the module version and VCS stamp recorded in the binary.
func Resolve() string {
	info, _ := debug.ReadBuildInfo()
	return resolve(Version, Commit, info)
}

func resolve(version, commit string, info *debug.BuildInfo) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")

	var revision string
	var dirty bool
	if info != nil {
		if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = strings.TrimPrefix(info.Main.Version, "v")
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				dirty = setting.Value == "true"
			}
		}
	}

	if version == "" {
		version = "0.0.0-dev"
	}
	// A linked commit describes the release build and wins over VCS stamps.
	if commit = strings.TrimSpace(commit); commit != "" {
		revision, dirty = commit, false
	}
	if revision == "" {
		return version
	}

	if len(revision) > 12 {
		revision = revision[:12]
	}
	suffix := revision
	if dirty {
		suffix += "-dirty"
	}
	return version + "+" + suffix
}
