package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"
)

// Config is the user's keybinding file. Each section maps a key to an
// action name; "none" unbinds a default key.
type Config struct {
	Global    map[string]string `json:"global,omitempty"`
	Input     map[string]string `json:"input,omitempty"`
	Results   map[string]string `json:"results,omitempty"`
	Search    map[string]string `json:"search,omitempty"`
	Profiles  map[string]string `json:"profiles,omitempty"`
	Analytics map[string]string `json:"analytics,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
	Help      map[string]string `json:"help,omitempty"`
}

// sections pairs each config section with its context
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextInput:     c.Input,
		ContextResults:   c.Results,
		ContextSearch:    c.Search,
		ContextProfiles:  c.Profiles,
		ContextAnalytics: c.Analytics,
		ContextConfirm:   c.Confirm,
		ContextHelp:      c.Help,
	}
}

// LoadConfig parses a keybinding file (JSON with comments)
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds file %s: %w", path, err)
	}

	return &config, nil
}

// ApplyConfig applies user bindings over registry. Entries reported as
// errors by the validator are skipped.
func ApplyConfig(registry *Registry, config *Config) *ValidationResult {
	result := NewValidator().ValidateConfig(config)

	skip := make(map[Context]map[string]bool)
	for _, e := range result.Errors {
		if skip[e.Context] == nil {
			skip[e.Context] = make(map[string]bool)
		}
		skip[e.Context][e.Key] = true
	}

	for context, bindings := range config.sections() {
		for key, action := range bindings {
			if skip[context][key] {
				continue
			}
			if Action(action) == ActionNone {
				registry.Unregister(context, key)
				continue
			}
			registry.Register(context, key, Action(action))
		}
	}

	return result
}

// Load returns the default bindings overlaid with the file at path.
// A missing file is not an error.
func Load(path string) (*Registry, error) {
	registry := DefaultRegistry()
	if path == "" {
		return registry, nil
	}

	config, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return registry, err
	}

	result := ApplyConfig(registry, config)
	for _, e := range result.Errors {
		slog.Warn("ignoring keybinding", slog.String("error", e.Error()))
	}
	for _, w := range result.Warnings {
		slog.Info("keybinding warning", slog.String("warning", w.Error()))
	}

	return registry, nil
}
