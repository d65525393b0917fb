package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/sportsfeed/contentguard/pkg/version.Version=..." at build time.
var (
	Version   = "0.4.0"
	AppName   = "ContentGuard"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
