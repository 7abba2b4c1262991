package sarf

// Version information for sarf.
// Override at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/sarf.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "sarf"

	// Description is a short description of the application.
	Description = "Arabic grammar explorer - mock translation, morphology and phrase building"

	// Version is the semantic version of the application.
	Version = "0.3.0"
)

// Build information, set via ldflags during release builds.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version string with the short commit, if known.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns the user agent sent when fetching remote resources.
func UserAgent() string {
	return Name + "/" + Version
}
