// Package version holds the build version, overridable at link time via
// -ldflags "-X .../internal/version.Version=v1.2.3".
package version

var Version = "dev"
