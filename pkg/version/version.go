package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const AppName = "OrgPulse"

// Version is the release tag, overridable at link time with
// -ldflags "-X github.com/orgpulse/orgpulse/pkg/version.Version=...".
var Version = "0.4.2"

type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo combines the release tag with the VCS stamps the Go linker
// embeds into the binary.
func GetInfo() Info {
	info := Info{
		AppName:   AppName,
		Version:   Version,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.BuildTime = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	return info
}
