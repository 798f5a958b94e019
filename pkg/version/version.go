package version

// Version represents the current version of folio
const Version = "1.3.0"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "folio version " + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}
