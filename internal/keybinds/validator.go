package keybinds

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "invalid", "reserved", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]bool
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]bool{
			"ctrl+c": true, // Force quit should always work
		},
	}
}

// ValidateConfig checks every entry of a user config
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	sections := config.sections()
	contexts := make([]Context, 0, len(sections))
	for c := range sections {
		contexts = append(contexts, c)
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i] < contexts[j] })

	for _, context := range contexts {
		keys := make([]string, 0, len(sections[context]))
		for k := range sections[context] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			v.validateEntry(context, key, Action(sections[context][key]), result)
		}
	}

	return result
}

func (v *Validator) validateEntry(context Context, key string, action Action, result *ValidationResult) {
	switch {
	case strings.TrimSpace(key) == "":
		result.Errors = append(result.Errors, ValidationError{
			Type: "invalid", Context: context, Key: key, Message: "empty key",
		})
		return
	case v.reservedKeys[key]:
		result.Errors = append(result.Errors, ValidationError{
			Type: "reserved", Context: context, Key: key, Message: "key is reserved and cannot be rebound",
		})
		return
	case action == ActionNone:
		return
	case !IsValidAction(context, action):
		result.Errors = append(result.Errors, ValidationError{
			Type: "invalid", Context: context, Key: key,
			Message: fmt.Sprintf("unknown action '%s' for this context", action),
		})
		return
	}

	if (context == ContextGlobal || context == ContextInput) && isPrintable(key) {
		result.Warnings = append(result.Warnings, ValidationError{
			Type: "warning", Context: context, Key: key,
			Message: "printable key will be unavailable while typing input",
		})
	}
}

// isPrintable reports whether key is a single printable character
func isPrintable(key string) bool {
	if key == "space" {
		return true
	}
	return utf8.RuneCountInString(key) == 1
}
