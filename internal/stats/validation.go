// Package stats implements the aggregation core.
//
// This file (validation.go) validates run configuration before any network
// call is made: the GitHub username against GitHub's login rules, the output
// path, and sensible defaults for the numeric knobs.
package stats

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// loginPattern validates GitHub usernames according to GitHub's rules:
// alphanumeric characters and hyphens, no leading/trailing hyphen, no
// consecutive hyphens.
var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9]|-[a-zA-Z0-9])*$`)

// validateUsername checks a GitHub username against GitHub's rules.
// GitHub usernames:
//   - Must be 1-39 characters long
//   - Can only contain alphanumeric characters and hyphens
//   - Cannot start or end with a hyphen, or contain consecutive hyphens
func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) > 39 {
		return fmt.Errorf("username too long (max 39 characters): %s", username)
	}
	if !loginPattern.MatchString(username) {
		return fmt.Errorf("invalid username format: %s (alphanumeric and single hyphens only, cannot start/end with hyphen)", username)
	}
	return nil
}

// validateOutputPath checks the output file location. The snapshot is JSON,
// so the extension must say so, and writing into a parent directory via a
// relative path is rejected.
func validateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output file cannot be empty")
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return fmt.Errorf("invalid output extension %q: snapshot must be a .json file", ext)
	}

	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) && strings.HasPrefix(filepath.ToSlash(clean), "../") {
		return fmt.Errorf("output file must be within the current directory: %s", path)
	}

	return nil
}

// validateConfig checks the whole run configuration and fills in defaults
// for unset numeric knobs.
func validateConfig(config *Config) error {
	if config.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}
	if config.Username != "" {
		if err := validateUsername(config.Username); err != nil {
			return err
		}
	}
	if err := validateOutputPath(config.OutputFile); err != nil {
		return err
	}

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaultBatchWorkers
	}
	if config.MaxWorkers > 50 {
		return fmt.Errorf("max workers too high (max 50): %d", config.MaxWorkers)
	}
	if config.TopLanguages < 0 {
		config.TopLanguages = 0
	}

	return nil
}
