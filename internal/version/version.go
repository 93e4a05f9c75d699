package version

// Version is set at build time via -ldflags.
var Version = "dev"

// GetVersionString returns the display string for the running binary.
func GetVersionString() string {
	return "tasmilindexer " + Version
}
