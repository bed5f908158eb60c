package version

// Version is the current version of the pipeline binaries.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/pal-3/AlgorithmTradingBacktester/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "v1.0.0"

// SchemaVersion is the config schema version this build understands. Config
// files declare the schema they were written against and loading fails when
// the two are incompatible.
const SchemaVersion = "v1.0.0"

// GetVersion returns the current version of the pipeline.
func GetVersion() string {
	return Version
}
