package honeybadger

// Version is the current version of honeybadger-go.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
