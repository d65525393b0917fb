package utils

import (
	"github.com/avct/uasurfer"
)

const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
	PlatformOther   = "other"
	PlatformUnknown = "unknown"
)

// Platform reduces a User-Agent header to the client platform stored with
// moderation log entries.
func Platform(uaString string) string {
	if uaString == "" {
		return PlatformUnknown
	}
	ua := uasurfer.Parse(uaString)

	switch ua.OS.Name {
	case uasurfer.OSiOS:
		return PlatformIOS
	case uasurfer.OSAndroid:
		return PlatformAndroid
	}
	switch ua.DeviceType {
	case uasurfer.DeviceComputer:
		return PlatformWeb
	case uasurfer.DeviceUnknown:
		return PlatformUnknown
	default:
		return PlatformOther
	}
}
