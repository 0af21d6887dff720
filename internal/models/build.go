package models

type BuildInformation struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"buildDate"`
}

// VersionString returns the version, suffixed with the short
// commit hash for builds of the latest image.
func (b BuildInformation) VersionString() string {
	if b.Version != "latest" {
		return b.Version
	}
	const commitShortHashLength = 7
	if b.Commit == "unknown" || len(b.Commit) != commitShortHashLength {
		return "latest"
	}
	return b.Version + "-" + b.Commit
}
