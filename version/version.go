package version

const (
	// VERSION is the binary version.
	VERSION = "v0.1.0"
)

// GITCOMMIT is injected at build time via -ldflags.
var GITCOMMIT = ""
