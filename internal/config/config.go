// Package config loads pindex configuration from JSONC files and CLI
// overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrIndexFolderEmpty   = errors.New("index-folder cannot be empty")
	ErrVaultEmpty         = errors.New("vault cannot be empty")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Vault           string   `json:"vault,omitempty"`
	IndexFolder     string   `json:"index_folder"`
	Columns         []string `json:"columns"`
	UseTemplate     bool     `json:"use_template,omitempty"`
	Template        string   `json:"template,omitempty"`
	TemplateFolder  string   `json:"template_folder,omitempty"`
	InheritedFields []string `json:"inherited_fields,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	VaultAbs     string `json:"-"` // Absolute path to the vault root

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to vault-local config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Vault:          ".",
		IndexFolder:    "projects",
		Columns:        []string{"status", "priority"},
		TemplateFolder: "templates",
	}
}

// ConfigFileName is the vault-local config file name.
const ConfigFileName = ".pindex.json"

// IndexTemplate returns the template path used for new index documents, or
// empty when templating is disabled.
func (c Config) IndexTemplate() string {
	if !c.UseTemplate {
		return ""
	}

	return c.Template
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/pindex/config.json if set, otherwise
// ~/.config/pindex/config.json. Returns empty string if home directory
// cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "pindex", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "pindex", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	VaultOverride   string            // --vault flag value; empty means no override
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/pindex/config.json or $XDG_CONFIG_HOME/pindex/config.json)
// 3. Vault-local config file at default location (.pindex.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.VaultOverride != "" {
		cfg.Vault = input.VaultOverride
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.Vault) {
		cfg.VaultAbs = cfg.Vault
	} else {
		cfg.VaultAbs = filepath.Join(workDir, cfg.Vault)
	}

	return cfg, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, explicitEmpty, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["index_folder"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, globalCfgPath, ErrIndexFolderEmpty)
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the vault-local config file (.pindex.json) or an
// explicit config file. Returns the config, the path if loaded, and any
// error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		// Check existence first to provide a clear "not found" error
		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, explicitEmpty, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["index_folder"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgFile, ErrIndexFolderEmpty)
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return zero config. Returns the config, a map of explicitly empty
// fields, whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// Check which fields were explicitly set to empty
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["index_folder"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["index_folder"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Vault != "" {
		base.Vault = overlay.Vault
	}

	if overlay.IndexFolder != "" {
		base.IndexFolder = overlay.IndexFolder
	}

	if overlay.Columns != nil {
		base.Columns = overlay.Columns
	}

	if overlay.UseTemplate {
		base.UseTemplate = true
	}

	if overlay.Template != "" {
		base.Template = overlay.Template
	}

	if overlay.TemplateFolder != "" {
		base.TemplateFolder = overlay.TemplateFolder
	}

	if overlay.InheritedFields != nil {
		base.InheritedFields = overlay.InheritedFields
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.Vault == "" {
		return ErrVaultEmpty
	}

	if cfg.IndexFolder == "" {
		return ErrIndexFolderEmpty
	}

	return nil
}
