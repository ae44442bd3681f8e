package main

import (
	"runtime/debug"

	"github.com/marcus/sitegate/cmd"
)

// Version is set at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

// effectiveVersion prefers an injected version, then the module version from
// `go install module@version`, then a devel+<rev>[+dirty] string.
func effectiveVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v
	}
	return versionFromBuildInfo(info, v)
}

func versionFromBuildInfo(info *debug.BuildInfo, fallback string) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return fallback
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	v := "devel+" + rev
	if dirty {
		v += "+dirty"
	}
	return v
}

func main() {
	cmd.SetVersion(effectiveVersion(Version))
	cmd.Execute()
}
