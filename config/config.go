package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"overlay-window/engine"
	"overlay-window/geom"
	"overlay-window/log"
	"overlay-window/physics"
	"overlay-window/snap"
)

const (
	ConfigFileName = "config.json"
	// ConfigDirEnvVar overrides the configuration directory.
	ConfigDirEnvVar = "OW_CONFIG_DIR"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".overlay-window"), nil
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Spring is a spring tuning as stored in config files.
type Spring struct {
	Damping    float64 `json:"damping"`
	ResponseMs int     `json:"response_ms"`
}

// Params converts the stored tuning for the engine.
func (s Spring) Params() physics.SpringParams {
	return physics.SpringParams{
		Damping:  s.Damping,
		Response: time.Duration(s.ResponseMs) * time.Millisecond,
	}
}

func springOf(p physics.SpringParams) Spring {
	return Spring{Damping: p.Damping, ResponseMs: int(p.Response / time.Millisecond)}
}

// Config represents the application configuration
type Config struct {
	// DefaultCorner is where the overlay first appears.
	DefaultCorner snap.Corner `json:"default_corner"`
	// HideActionEnabled adds "Hide" to the overlay menu.
	HideActionEnabled bool `json:"hide_action_enabled"`
	// DefaultOverlaySize is the size in points used until the user resizes.
	DefaultOverlaySize geom.Size `json:"default_overlay_size"`
	// RoundedCorners selects the top inset for rounded-corner displays.
	RoundedCorners bool `json:"rounded_corners"`
	// ExcludeFromStatusBar lets the overlay cover the status line.
	ExcludeFromStatusBar bool `json:"exclude_from_status_bar"`
	// BottomSafeInset is reserved below the bottom snap targets, in points.
	BottomSafeInset float64 `json:"bottom_safe_inset"`
	// KeyboardFraction is the height of the simulated keyboard as a
	// fraction of the container height.
	KeyboardFraction float64 `json:"keyboard_fraction"`
	// HeightSoftness and WidthSoftness tune the resize rubber band.
	HeightSoftness physics.Softness `json:"height_softness"`
	WidthSoftness  physics.Softness `json:"width_softness"`
	// SettleSpring drives the overlay to its snap target.
	SettleSpring Spring `json:"settle_spring"`
	// ResizeSpring settles a resized dimension into its bounds.
	ResizeSpring Spring `json:"resize_spring"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	opts := engine.DefaultOptions()
	return &Config{
		DefaultCorner:        opts.DefaultCorner,
		HideActionEnabled:    true,
		DefaultOverlaySize:   opts.DefaultSize,
		RoundedCorners:       opts.RoundedCorners,
		ExcludeFromStatusBar: false,
		BottomSafeInset:      0,
		KeyboardFraction:     0.4,
		HeightSoftness:       opts.HeightSoftness,
		WidthSoftness:        opts.WidthSoftness,
		SettleSpring:         springOf(opts.Settle),
		ResizeSpring:         springOf(opts.ResizeSettle),
	}
}

// Validate reports the first setting the engine cannot work with.
func (c *Config) Validate() error {
	opts := engine.DefaultOptions()
	switch {
	case c.DefaultOverlaySize.IsZero():
		return fmt.Errorf("%w: default_overlay_size %s", ErrInvalidConfig, c.DefaultOverlaySize)
	case c.DefaultOverlaySize.Height < opts.HeightBounds.Min || c.DefaultOverlaySize.Height > opts.HeightBounds.Max:
		return fmt.Errorf("%w: default_overlay_size height %v outside [%v, %v]",
			ErrInvalidConfig, c.DefaultOverlaySize.Height, opts.HeightBounds.Min, opts.HeightBounds.Max)
	case c.KeyboardFraction < 0 || c.KeyboardFraction >= 1:
		return fmt.Errorf("%w: keyboard_fraction %v", ErrInvalidConfig, c.KeyboardFraction)
	case c.BottomSafeInset < 0:
		return fmt.Errorf("%w: bottom_safe_inset %v", ErrInvalidConfig, c.BottomSafeInset)
	case c.HeightSoftness.OverMax <= 0 || c.HeightSoftness.UnderMin <= 0,
		c.WidthSoftness.OverMax <= 0 || c.WidthSoftness.UnderMin <= 0:
		return fmt.Errorf("%w: softness must be positive", ErrInvalidConfig)
	case c.SettleSpring.Damping <= 0 || c.SettleSpring.ResponseMs <= 0,
		c.ResizeSpring.Damping <= 0 || c.ResizeSpring.ResponseMs <= 0:
		return fmt.Errorf("%w: springs need positive damping and response", ErrInvalidConfig)
	}
	return nil
}

// EngineOptions maps the configuration onto engine tuning.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.DefaultCorner = c.DefaultCorner
	opts.DefaultSize = c.DefaultOverlaySize
	opts.RoundedCorners = c.RoundedCorners
	opts.BottomSafeInset = c.BottomSafeInset
	opts.HeightSoftness = c.HeightSoftness
	opts.WidthSoftness = c.WidthSoftness
	opts.Settle = c.SettleSpring.Params()
	opts.ResizeSettle = c.ResizeSpring.Params()
	return opts
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	// Missing keys keep their defaults.
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		log.WarningLog.Printf("ignoring config file at %s: %v", configPath, err)
		return DefaultConfig()
	}

	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
