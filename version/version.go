package version

import "runtime"

// Build metadata, populated at link time via -ldflags:
//
//	-X github.com/mhadip/tensibot/version.GitRelease=v0.2.0
var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
	GoInfo        = runtime.Version()
)
