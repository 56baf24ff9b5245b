package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Network NetworkConfig `toml:"network"`
	Browser BrowserConfig `toml:"browser"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type NetworkConfig struct {
	RequestTimeout int `toml:"request_timeout"` // seconds, per header-profile attempt
	BrowserTimeout int `toml:"browser_timeout"` // seconds, headless render fallback
	MaxRedirects   int `toml:"max_redirects"`
}

type BrowserConfig struct {
	UseCookies bool     `toml:"use_cookies"`
	Browsers   []string `toml:"browsers"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Network: NetworkConfig{
			RequestTimeout: 15,
			BrowserTimeout: 30,
			MaxRedirects:   5,
		},
		Browser: BrowserConfig{
			UseCookies: false,
			Browsers:   []string{},
		},
		Storage: StorageConfig{
			Path: "cssdesigner.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return cfg, fmt.Errorf("error finding home directory: %w", err)
			}
			configHome = filepath.Join(home, ".config")
		}

		configDir := filepath.Join(configHome, "cssdesigner")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CSSDESIGNER")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
	}

	decodeTOMLTags := func(dc *mapstructure.DecoderConfig) { dc.TagName = "toml" }
	if err := viper.Unmarshal(cfg, decodeTOMLTags); err != nil {
		return cfg, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}
