// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"ossgate/internal/errs"
	"ossgate/internal/provider/registry"
	"ossgate/pkg/common"
	"ossgate/pkg/storage"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "ossgate"
	EnvPrefix      = "OSSGATE"
)

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

type TimeoutsConfig struct {
	List     time.Duration `mapstructure:"list" yaml:"list" validate:"gt=0"`
	Transfer time.Duration `mapstructure:"transfer" yaml:"transfer" validate:"gt=0"`
	Control  time.Duration `mapstructure:"control" yaml:"control" validate:"gt=0"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr" validate:"required"`
}

type Config struct {
	Log      LogConfig                 `mapstructure:"log" yaml:"log"`
	Timeouts TimeoutsConfig            `mapstructure:"timeouts" yaml:"timeouts"`
	Server   ServerConfig              `mapstructure:"server" yaml:"server"`
	Profiles map[string]storage.Config `mapstructure:"profiles" yaml:"profiles" validate:"dive"`
}

// Returns the named connection profile
func (c *Config) Profile(name string) (storage.Config, error) {
	profile, ok := c.Profiles[strings.ToLower(name)]
	if !ok {
		return storage.Config{}, errs.New(errs.KindConfig, fmt.Sprintf("profile %q not found. Use 'ossgate config set profiles.%s.provider <provider>' to create it", name, name))
	}
	return profile, nil
}

// Returns the sorted profile names
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConfigManager reads the layered runtime config (defaults, file, environment)
// and edits the config file. Edits never persist defaults or env values.
type ConfigManager struct {
	path     string
	runtime  *viper.Viper
	file     *viper.Viper
	validate *validator.Validate
}

// Creates and initializes a new ConfigManager.
// An empty path selects ~/.config/ossgate/config.yaml.
func NewConfigManager(path string) (*ConfigManager, error) {
	if path == "" {
		defaultPath, err := getConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	m := &ConfigManager{
		path:     path,
		validate: validator.New(),
	}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", ConfigDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	return filepath.Join(configDir, ConfigFileName), nil
}

func (m *ConfigManager) Path() string {
	return m.path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("timeouts.list", "30s")
	v.SetDefault("timeouts.transfer", "20s")
	v.SetDefault("timeouts.control", "12s")
	v.SetDefault("server.addr", ":8080")
}

func (m *ConfigManager) reload() error {
	runtime := viper.New()
	runtime.SetConfigFile(m.path)
	runtime.SetConfigType("yaml")
	runtime.SetEnvPrefix(EnvPrefix)
	runtime.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	runtime.AutomaticEnv()
	setDefaults(runtime)

	file := viper.New()
	file.SetConfigFile(m.path)
	file.SetConfigType("yaml")
	file.SetConfigPermissions(0600)

	for _, v := range []*viper.Viper{runtime, file} {
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	m.runtime = runtime
	m.file = file
	return nil
}

// viper reports a missing explicit config file as an os error, not ConfigFileNotFoundError
func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Decodes and validates the effective configuration
func (m *ConfigManager) LoadConfig() (*Config, error) {
	var cfg Config
	err := m.runtime.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)))
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "error parsing config file", err)
	}

	normalizeProfiles(&cfg)

	if err := m.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Credentials may reference an environment variable, e.g. "${ALIYUN_SECRET}"
func normalizeProfiles(cfg *Config) {
	for name, p := range cfg.Profiles {
		p.Provider = common.ParseProvider(string(p.Provider))
		p.AccessKey = expandEnvRef(p.AccessKey)
		p.SecretKey = expandEnvRef(p.SecretKey)
		cfg.Profiles[name] = p
	}
}

// Only a whole-value reference is expanded; secrets may legitimately contain '$'
func expandEnvRef(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(value[2 : len(value)-1])
	}
	return value
}

func (m *ConfigManager) Validate(cfg *Config) error {
	if err := m.validate.Struct(cfg); err != nil {
		return errs.Wrap(errs.KindConfig, "invalid configuration", err)
	}
	for _, name := range cfg.ProfileNames() {
		if p := cfg.Profiles[name]; !registry.IsSupported(p.Provider) {
			return errs.New(errs.KindConfig, fmt.Sprintf("profile %q: unsupported provider %q. Supported providers are: %v", name, p.Provider, registry.GetSupportedProviders()))
		}
	}
	return nil
}

var (
	profileFields = map[string]bool{
		"provider": true, "access_key": true, "secret_key": true,
		"region": true, "endpoint": true, "bucket": true,
	}
	scalarKeys = map[string]func(string) error{
		"log.level":         validateLogLevel,
		"log.format":        validateLogFormat,
		"timeouts.list":     validateDuration,
		"timeouts.transfer": validateDuration,
		"timeouts.control":  validateDuration,
		"server.addr":       func(string) error { return nil },
	}
)

// Normalizes a key and checks it is one the config file understands
func normalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := scalarKeys[key]; ok {
		return key, nil
	}

	parts := strings.Split(key, ".")
	if len(parts) == 3 && parts[0] == "profiles" && parts[1] != "" && profileFields[parts[2]] {
		return key, nil
	}
	if len(parts) == 2 && parts[0] == "profiles" && parts[1] != "" {
		return key, nil
	}
	return "", errs.New(errs.KindInvalidInput, fmt.Sprintf("invalid config key: %s. Use a key like 'log.level', 'timeouts.list' or 'profiles.<name>.provider'", key))
}

func validateValue(key, value string) error {
	if check, ok := scalarKeys[key]; ok {
		return check(value)
	}
	if strings.HasSuffix(key, ".provider") {
		if !registry.IsSupported(common.ParseProvider(value)) {
			return errs.New(errs.KindInvalidInput, fmt.Sprintf("unsupported provider: %s. Supported providers are: %v", value, registry.GetSupportedProviders()))
		}
	}
	return nil
}

func validateLogLevel(value string) error {
	switch strings.ToLower(value) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return errs.New(errs.KindInvalidInput, fmt.Sprintf("invalid log level: %s", value))
}

func validateLogFormat(value string) error {
	switch strings.ToLower(value) {
	case "text", "json":
		return nil
	}
	return errs.New(errs.KindInvalidInput, fmt.Sprintf("invalid log format: %s", value))
}

func validateDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return errs.New(errs.KindInvalidInput, fmt.Sprintf("invalid duration: %s (expected e.g. 30s or 1m)", value))
	}
	return nil
}

// Writes a single key to the config file
func (m *ConfigManager) SetValue(key, value string) error {
	normalized, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if strings.Count(normalized, ".") == 1 && strings.HasPrefix(normalized, "profiles.") {
		return errs.New(errs.KindInvalidInput, fmt.Sprintf("cannot set a whole profile; set a field such as %s.provider", normalized))
	}
	if err := validateValue(normalized, value); err != nil {
		return err
	}

	if strings.HasSuffix(normalized, ".provider") {
		value = common.ParseProvider(value).String()
	}

	m.file.Set(normalized, value)
	if err := m.file.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return m.reload()
}

// Returns the effective value of a key, including defaults and env overrides
func (m *ConfigManager) GetValue(key string) (string, bool, error) {
	normalized, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	if !m.runtime.IsSet(normalized) {
		return "", false, nil
	}
	return m.runtime.GetString(normalized), true, nil
}

// Removes a key (or a whole profile) from the config file
func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	normalized, err := normalizeKey(key)
	if err != nil {
		return false, err
	}

	settings := m.file.AllSettings()
	if !deleteNested(settings, strings.Split(normalized, ".")) {
		return false, nil
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return false, fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return false, fmt.Errorf("error writing config file: %w", err)
	}
	return true, m.reload()
}

func deleteNested(settings map[string]any, parts []string) bool {
	if len(parts) == 1 {
		if _, ok := settings[parts[0]]; !ok {
			return false
		}
		delete(settings, parts[0])
		return true
	}

	child, ok := settings[parts[0]].(map[string]any)
	if !ok {
		return false
	}
	if !deleteNested(child, parts[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(settings, parts[0])
	}
	return true
}

// Returns the effective settings as nested maps, for display
func (m *ConfigManager) GetAllSettings() map[string]any {
	return m.runtime.AllSettings()
}
