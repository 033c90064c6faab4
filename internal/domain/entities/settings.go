package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults for optional settings.
const (
	DefaultBaseBranch  = "main"
	DefaultPatchBranch = "gt-patch"
	DefaultWorkers     = 5
	DefaultRateLimit   = Duration(time.Second)
)

// Synthetic committer identity. Provenance of the original commits is
// intentionally not preserved.
const (
	GitAuthorName  = "migfetch"
	GitAuthorEmail = "migfetch@localhost"
)

// Fixed commit messages for the two snapshots.
const (
	BaseCommitMessage  = "Initialize repository from the parent of the migration commit (original history removed)"
	PatchCommitMessage = "Apply the migration commit snapshot"
)

// Settings is the runtime configuration for migfetch.
type Settings struct {
	OutputDir   string       `yaml:"output_dir"`
	BaseBranch  string       `yaml:"base_branch"`
	PatchBranch string       `yaml:"patch_branch"`
	Workers     int          `yaml:"workers"`
	RateLimit   Duration     `yaml:"rate_limit"`
	GitHub      GitHubConfig `yaml:"github"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (it *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %w", raw, err)
	}
	*it = Duration(parsed)
	return nil
}

// GitHubConfig holds the archive/metadata source credentials.
type GitHubConfig struct {
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths. The result is not validated;
// callers layer CLI overrides first and call Validate on the final value.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := defaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.GitHub.Token = ResolveToken(settings.GitHub.Token)

	return settings, nil
}

func defaultSettings() *Settings {
	return &Settings{
		BaseBranch:  DefaultBaseBranch,
		PatchBranch: DefaultPatchBranch,
		Workers:     DefaultWorkers,
		RateLimit:   DefaultRateLimit,
	}
}

// NewDefaultSettings returns settings with every optional field at its
// default, for callers configuring entirely through flags.
func NewDefaultSettings() *Settings {
	return defaultSettings()
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".migfetch.yaml",
		".migfetch.yml",
		"migfetch.yaml",
		"migfetch.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Validate checks for required configuration values.
func (it *Settings) Validate() error {
	if it.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if it.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", it.Workers)
	}
	if it.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	if err := ValidateBranchNames(it.BaseBranch, it.PatchBranch); err != nil {
		return err
	}
	if it.GitHub.Token == "" {
		return errors.New(
			"github.token is required (set inline, via ${ENV_VAR}, or as file path)")
	}
	return nil
}
