package version

// Version is set at build time with -ldflags "-X github.com/gimlet-io/workflow-notifier/pkg/version.Version=..."
var Version = "dev"

// String returns the version of the binary
func String() string {
	return Version
}
