package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/studiowebux/biaslens/internal/config"
	"github.com/studiowebux/biaslens/internal/types"
	"github.com/tidwall/jsonc"
)

// Manager handles the persisted session and the profiles file.
// Analysis results are never persisted here.
type Manager struct {
	session      *types.Session
	profiles     []types.Profile
	sessionPath  string
	profilesPath string
}

// NewManager creates a manager backed by the configured files
func NewManager() *Manager {
	return NewManagerAt(config.SessionFile, config.GetProfilesFilePath())
}

// NewManagerAt creates a manager backed by explicit file paths
func NewManagerAt(sessionPath, profilesPath string) *Manager {
	return &Manager{
		session:      &types.Session{},
		profiles:     []types.Profile{},
		sessionPath:  sessionPath,
		profilesPath: profilesPath,
	}
}

// Load loads session and profiles from disk
func (m *Manager) Load() error {
	if err := m.LoadSession(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if err := m.LoadProfiles(); err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	return nil
}

// LoadSession loads the session file
func (m *Manager) LoadSession() error {
	data, err := os.ReadFile(m.sessionPath)
	if err != nil {
		// If file doesn't exist, use default session
		m.session = &types.Session{}
		return nil
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	m.session = &session
	return nil
}

// SaveSession saves the session to disk
func (m *Manager) SaveSession() error {
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.sessionPath, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// LoadProfiles loads the profiles file. Comments and trailing commas are allowed.
func (m *Manager) LoadProfiles() error {
	data, err := os.ReadFile(m.profilesPath)
	if err != nil {
		m.profiles = []types.Profile{defaultProfile()}
		return nil
	}

	var profiles []types.Profile
	if err := json.Unmarshal(jsonc.ToJSON(data), &profiles); err != nil {
		return fmt.Errorf("failed to parse profiles file %s: %w", m.profilesPath, err)
	}

	for i := range profiles {
		if profiles[i].Headers == nil {
			profiles[i].Headers = make(map[string]string)
		}
		if profiles[i].Name == "" {
			profiles[i].Name = fmt.Sprintf("profile-%d", i+1)
			slog.Warn("profile without name", slog.String("assigned", profiles[i].Name))
		}
	}

	if len(profiles) == 0 {
		profiles = []types.Profile{defaultProfile()}
	}

	m.profiles = profiles
	return nil
}

func defaultProfile() types.Profile {
	return types.Profile{
		Name:    "Default",
		Headers: make(map[string]string),
	}
}

// GetProfiles returns all profiles
func (m *Manager) GetProfiles() []types.Profile {
	return m.profiles
}

// GetActiveProfile returns the currently active profile, falling back to the
// first profile when the stored name no longer exists
func (m *Manager) GetActiveProfile() *types.Profile {
	for i := range m.profiles {
		if m.profiles[i].Name == m.session.ActiveProfile {
			return &m.profiles[i]
		}
	}

	if len(m.profiles) > 0 {
		return &m.profiles[0]
	}

	p := defaultProfile()
	return &p
}

// SetActiveProfile sets the active profile by name and persists the choice
func (m *Manager) SetActiveProfile(name string) error {
	found := false
	for _, profile := range m.profiles {
		if profile.Name == name {
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("profile not found: %s", name)
	}

	m.session.ActiveProfile = name
	return m.SaveSession()
}

// Timeout returns the request timeout of a profile, zero for the client default
func Timeout(p *types.Profile) time.Duration {
	if p == nil || p.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}
