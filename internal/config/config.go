package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvAPIURL overrides the profile base URL
	EnvAPIURL = "BIASLENS_API_URL"
)

var (
	// ConfigDir is the global configuration directory (~/.biaslens)
	ConfigDir string

	// DatabasePath is the SQLite database file for analytics
	DatabasePath string

	// SessionFile is the session state file
	SessionFile string

	// ProfilesFile is the profiles configuration file (JSON with comments)
	ProfilesFile string

	// LogFile receives TUI logs while the alt screen owns the terminal
	LogFile string

	// KeybindsFile holds optional TUI keybinding overrides (JSON with comments)
	KeybindsFile string
)

const defaultProfiles = `[
  // Profiles select the analysis service and client settings.
  // "timeout" is in seconds; "analyticsEnabled" logs submission stats locally.
  {
    "name": "Default",
    "baseUrl": "http://localhost:8000",
    "timeout": 120,
    "headers": {}
  }
]
`

// Initialize sets up the configuration directory and files.
// It creates ~/.biaslens/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".biaslens"))
}

// InitializeAt sets up the configuration rooted at dir
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "biaslens.db")
	SessionFile = filepath.Join(ConfigDir, "session.json")
	ProfilesFile = filepath.Join(ConfigDir, "profiles.jsonc")
	LogFile = filepath.Join(ConfigDir, "biaslens.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		if err := os.WriteFile(SessionFile, []byte(`{}`), FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	if _, err := os.Stat(ProfilesFile); os.IsNotExist(err) {
		if err := os.WriteFile(ProfilesFile, []byte(defaultProfiles), FilePermissions); err != nil {
			return fmt.Errorf("failed to create profiles file: %w", err)
		}
	}

	return nil
}

// GetProfilesFilePath returns the profiles file path (local or global)
func GetProfilesFilePath() string {
	for _, local := range []string{".biaslens.jsonc", ".biaslens.json"} {
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	return ProfilesFile
}

// LoadEnvFile reads KEY=VALUE pairs from an env file without touching the
// process environment. An empty path yields an empty map.
func LoadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	env, err := gotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return env, nil
}

// ResolveBaseURL picks the API base URL. Priority: explicit flag, env file,
// process environment, profile. An empty result means the client default.
func ResolveBaseURL(flagValue string, envFile map[string]string, profileValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(envFile[EnvAPIURL]); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		return v
	}
	return strings.TrimSpace(profileValue)
}
