package buildinfo

import (
	"runtime/debug"
)

const (
	length  = 7
	unknown = "unknown"
)

// Revision returns the short vcs revision of the current build, suffixed with -dirty
// when the tree had local modifications. Binaries built without vcs stamping report "unknown".
func Revision() string {
	settings := map[string]string{}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			settings[setting.Key] = setting.Value
		}
	}
	return revision(settings)
}

func revision(settings map[string]string) string {
	rev := settings["vcs.revision"]
	if rev == "" {
		return unknown
	}
	if len(rev) > length {
		rev = rev[:length]
	}
	if settings["vcs.modified"] == "true" {
		rev += "-dirty"
	}
	return rev
}
