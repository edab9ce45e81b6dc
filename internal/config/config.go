package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

const appName = "ssai-innovid"

type Config struct {
	FallbackURL   string `koanf:"fallback_url"`   // played when the ad stream fails
	AdvertisingID string `koanf:"advertising_id"` // passed to interactive ads
	ContentTypeID string `koanf:"content_type"`   // "live_hls", "vod_hls" or "vod_dash"
	PlayerType    string `koanf:"player_type"`
	APIKey        string `koanf:"api_key"`

	Stream      StreamConfig      `koanf:"stream"`
	Interactive InteractiveConfig `koanf:"interactive"`
	Journal     JournalConfig     `koanf:"journal"`
	Scenario    ScenarioConfig    `koanf:"scenario"`
}

// StreamConfig overrides the sample stream identifiers.
type StreamConfig struct {
	AssetKey            string `koanf:"asset_key"`
	HLSContentSourceID  string `koanf:"hls_content_source_id"`
	HLSVideoID          string `koanf:"hls_video_id"`
	DASHContentSourceID string `koanf:"dash_content_source_id"`
	DASHVideoID         string `koanf:"dash_video_id"`
}

// InteractiveConfig holds interactive-ad behaviour switches.
type InteractiveConfig struct {
	// Force-stop the running interactive ad when a new ad starts without one.
	DisposeOnUnmatchedStart bool `koanf:"dispose_on_unmatched_start"`
}

// JournalConfig controls the on-disk event journal.
type JournalConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // default: $XDG_DATA_HOME/ssai-innovid/journal.db
	Keep    int    `koanf:"keep"`    // entries retained across runs (default: 1000)
}

// ScenarioConfig selects the scripted ad timeline.
type ScenarioConfig struct {
	Path string `koanf:"path"` // TOML timeline; empty uses the built-in one
}

// Load reads the default config files, then extra. Later files override
// earlier ones.
func Load(extra ...string) (*Config, error) {
	return LoadFrom(append(getConfigPaths(), extra...)...)
}

// LoadFrom reads the given config files, skipping those that do not exist.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		ContentTypeID: ima.VODHLS.String(),
		PlayerType:    ima.DefaultPlayerType,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Journal.Path = expandPath(cfg.Journal.Path)
	cfg.Scenario.Path = expandPath(cfg.Scenario.Path)
	cfg.FallbackURL = strings.TrimSpace(cfg.FallbackURL)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/ssai-innovid/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ContentType returns the parsed content type.
func (c *Config) ContentType() (ima.ContentType, error) {
	return ima.ParseContentType(c.ContentTypeID)
}

// StreamIDs returns the sample identifiers with configured overrides applied.
func (c *Config) StreamIDs() ima.StreamIDs {
	ids := ima.DefaultStreamIDs()
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&ids.AssetKey, c.Stream.AssetKey)
	override(&ids.HLSContentSourceID, c.Stream.HLSContentSourceID)
	override(&ids.HLSVideoID, c.Stream.HLSVideoID)
	override(&ids.DASHContentSourceID, c.Stream.DASHContentSourceID)
	override(&ids.DASHVideoID, c.Stream.DASHVideoID)
	return ids
}

// StreamRequest builds the request for the configured content type.
func (c *Config) StreamRequest() (ima.StreamRequest, error) {
	ct, err := c.ContentType()
	if err != nil {
		return ima.StreamRequest{}, err
	}
	return ima.BuildStreamRequest(ct, c.StreamIDs(), c.APIKey)
}

// Settings returns the SDK settings.
func (c *Config) Settings() ima.Settings {
	s := ima.DefaultSettings()
	if c.PlayerType != "" {
		s.PlayerType = c.PlayerType
	}
	return s
}

// GetJournalConfig returns the journal configuration with defaults applied.
func (c *Config) GetJournalConfig() JournalConfig {
	cfg := c.Journal
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.Keep <= 0 {
		cfg.Keep = 1000
	}
	return cfg
}

// JournalEnabled reports whether the journal should be opened.
func (c *Config) JournalEnabled() bool {
	return *c.GetJournalConfig().Enabled
}
