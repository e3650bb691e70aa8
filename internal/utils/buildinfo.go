package utils

import (
	"runtime/debug"
)

const developmentVersion = "development"

// GetApplicationVersion reports the version recorded in Go build info, or a
// development placeholder when the binary was built from a working tree.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return developmentVersion
}
