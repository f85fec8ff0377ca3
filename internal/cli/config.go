package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/save4dream/internal/content"
	"github.com/mesh-intelligence/save4dream/internal/game"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "SAVE4DREAM"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeySyncStrategy = "sync_strategy"
	cfgKeyPlayerName   = "player_name"
	cfgKeyInitCoins    = "initial.coins"
	cfgKeyInitSavings  = "initial.savings"
	cfgKeyInitLevel    = "initial.level"
	cfgKeyInitXP       = "initial.xp"
	cfgKeyAPIKey       = "genai.api_key"
	cfgKeyModel        = "genai.model"
	cfgKeyVerbose      = "log.verbose"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# save4dream configuration

# Storage backend: sqlite or memory
backend: sqlite

# Data directory (optional; overridable by --data-dir)
# data_dir:

# When the sqlite backend writes its JSONL files: immediate or on_close
sync_strategy: immediate

# Name of a new player
player_name: Player

# Starting balance of a new player
initial:
  coins: 450
  savings: 820
  level: 1
  xp: 65

# Gemini content generation. Without an API key the built-in tips,
# missions and lessons are used. GEMINI_API_KEY is also honored.
genai:
  # api_key:
  model: gemini-2.5-flash

log:
  verbose: false
`

// loadConfig reads config.yaml from configDir, creating the directory and
// a default file on first run. Environment variables prefixed SAVE4DREAM_
// override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(cfgKeyAPIKey, "SAVE4DREAM_GENAI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetDefault(cfgKeyPlayerName, game.InitialStats.Name)
	v.SetDefault(cfgKeyInitCoins, game.InitialStats.Coins)
	v.SetDefault(cfgKeyInitSavings, game.InitialStats.Savings)
	v.SetDefault(cfgKeyInitLevel, game.InitialStats.Level)
	v.SetDefault(cfgKeyInitXP, game.InitialStats.XP)
	v.SetDefault(cfgKeyModel, content.DefaultModel)
	v.SetDefault(cfgKeyVerbose, false)
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// initialStats builds the stats of a new player from configuration.
func initialStats(v *viper.Viper) types.UserStats {
	return types.UserStats{
		Coins:   v.GetInt(cfgKeyInitCoins),
		Level:   v.GetInt(cfgKeyInitLevel),
		XP:      v.GetInt(cfgKeyInitXP),
		Savings: v.GetInt(cfgKeyInitSavings),
		Name:    v.GetString(cfgKeyPlayerName),
	}
}
