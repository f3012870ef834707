// Package version reports the build version of the cafe binary.
package version

import "runtime/debug"

// version is set at build time:
//
//	go build -ldflags "-X github.com/7ntys/chaos-lab/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Overridden via -ldflags.
var version = ""

// GetVersion returns the linked version, the module version recorded in the
// build info, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
