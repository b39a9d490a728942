package version

// Build information set by ldflags
var (
	Version = "dev"     // Set at release: -X github.com/lumenworks/installkit/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set at release: -X github.com/lumenworks/installkit/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set at release: -X github.com/lumenworks/installkit/internal/version.Date={{.Date}}
)
