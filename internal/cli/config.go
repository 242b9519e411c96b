package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/petar-djukic/equipments/internal/logging"
	"github.com/petar-djukic/equipments/internal/paths"
	"github.com/petar-djukic/equipments/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envFileName    = ".env"
	envPrefix      = "EQUIPMENTS"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyImageDir     = "image_dir"
	cfgKeyStrictImages = "strict_images"
	cfgKeyLogLevel     = "log_level"
	cfgKeyLogFormat    = "log_format"
	cfgKeyLogFile      = "log_file"
	cfgKeyMetricsFile  = "metrics_file"

	defaultBackend  = types.BackendFiles
	defaultLogLevel = "warn"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# equipments configuration

# Blob backend: files (one JSONL file per collection) or sqlite.
backend: files

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Image directory (optional; defaults to <data_dir>/images)
# image_dir:

# Reject equipment whose image paths do not exist on disk.
strict_images: false

# Logging: debug, info, warn, error; text or json.
log_level: warn
log_format: text
# log_file:

# Prometheus textfile written after every command (optional).
# metrics_file:
`

// envKeys are the config keys that EQUIPMENTS_* environment variables may set.
// data_dir and image_dir are resolved by internal/paths so that config.yaml
// keeps precedence over the environment for them.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyStrictImages,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
	cfgKeyLogFile,
	cfgKeyMetricsFile,
}

// settings is the fully resolved configuration of one invocation.
type settings struct {
	configDir    string
	dataDir      string
	imageDir     string
	backend      string
	strictImages bool
	logLevel     string
	logFormat    string
	logFile      string
	metricsFile  string
}

// storeConfig returns the types.Config used to open the blob store.
func (s settings) storeConfig() types.Config {
	return types.Config{
		Backend:      s.backend,
		DataDir:      s.dataDir,
		ImageDir:     s.imageDir,
		StrictImages: s.strictImages,
	}
}

// loadSettings resolves directories and reads config.yaml, creating the
// config directory and a default config.yaml on first run.
func (a *app) loadSettings() (settings, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, err
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}
	imageDir, err := paths.ResolveImageDir(v.GetString(cfgKeyImageDir), dataDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve image dir: %w", err)
	}

	s := settings{
		configDir:    configDir,
		dataDir:      dataDir,
		imageDir:     imageDir,
		backend:      v.GetString(cfgKeyBackend),
		strictImages: v.GetBool(cfgKeyStrictImages),
		logLevel:     v.GetString(cfgKeyLogLevel),
		logFormat:    v.GetString(cfgKeyLogFormat),
		logFile:      v.GetString(cfgKeyLogFile),
		metricsFile:  v.GetString(cfgKeyMetricsFile),
	}
	if err := s.storeConfig().Validate(); err != nil {
		return settings{}, fmt.Errorf("config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return s, nil
}

// loadConfig reads config.yaml from configDir using Viper. A .env file in the
// same directory, when present, is loaded into the process environment first
// without overriding variables that are already set.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}
	if err := loadEnvFile(configDir); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, logging.FormatText)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
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

func loadEnvFile(configDir string) error {
	path := filepath.Join(configDir, envFileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
