package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckCompatibility checks if a config file's declared schema version is
// compatible with the schema this build supports.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Supported 1.2.0, Config 1.2.0 -> OK (exact match)
//   - Supported 1.2.1, Config 1.2.0 -> OK (patch differs)
//   - Supported 1.3.0, Config 1.2.0 -> ERROR (minor differs)
//   - Supported 2.0.0, Config 1.2.0 -> ERROR (major differs)
//   - Supported main, Config 1.2.0 -> OK (dev build, skip check)
//   - Supported 1.2.0, Config main -> OK (dev build, skip check)
func CheckCompatibility(supportedVersion, configVersion string) error {
	// Strip 'v' prefix if present for consistency
	supportedVersion = strings.TrimPrefix(supportedVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	// Skip version check for "main" (development builds)
	if supportedVersion == "main" || configVersion == "main" {
		return nil
	}

	// Parse supported version
	supportedSemver, err := semver.NewVersion(supportedVersion)
	if err != nil {
		return fmt.Errorf("invalid supported version '%s': %w", supportedVersion, err)
	}

	// Parse config version
	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return fmt.Errorf("invalid config version '%s': %w", configVersion, err)
	}

	// Check major version match
	if supportedSemver.Major() != configSemver.Major() {
		return fmt.Errorf("major version mismatch: pipeline supports %d.x.x but config declares %d.x.x",
			supportedSemver.Major(), configSemver.Major())
	}

	// Check minor version match
	if supportedSemver.Minor() != configSemver.Minor() {
		return fmt.Errorf("minor version mismatch: pipeline supports %d.%d.x but config declares %d.%d.x",
			supportedSemver.Major(), supportedSemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}

// CheckSchemaCompatibility checks a config file's declared schema version
// against the schema version supported by this build.
func CheckSchemaCompatibility(configVersion string) error {
	return CheckCompatibility(SchemaVersion, configVersion)
}
