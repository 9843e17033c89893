package version

var (
	Version   = "0.1.0"
	GitCommit = "dev"
	BuildDate = "20260831120000"
)

// String returns a human-readable version string.
func String() string {
	return "rnbokit " + Version + " (" + GitCommit + ", " + BuildDate + ")"
}
