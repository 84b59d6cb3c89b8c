package domain

import "runtime"

// Platform names the operating system the engine links for.
type Platform string

const (
	// PlatformDarwin is macOS, the only platform with framework linkage.
	PlatformDarwin Platform = "darwin"
	// PlatformLinux is Linux.
	PlatformLinux Platform = "linux"
	// PlatformWindows is Windows.
	PlatformWindows Platform = "windows"
)

// HostPlatform returns the platform the process is running on.
func HostPlatform() Platform {
	return Platform(runtime.GOOS)
}

// SupportsFrameworks reports whether framework linkage is meaningful on p.
func (p Platform) SupportsFrameworks() bool {
	return p == PlatformDarwin
}
