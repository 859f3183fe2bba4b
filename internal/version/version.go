package version

var (
	AppName = "TurnipBeams"

	// Version is overridden at build time via -ldflags.
	Version = "dev"
)
