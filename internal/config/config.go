// Package config resolves which external tools the scaffolder drives.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const fileType = "yaml"

// Config names the binaries and generator template used during scaffolding.
type Config struct {
	PackageManager string `mapstructure:"package_manager"` // installs dependencies, runs "create"
	PackageRunner  string `mapstructure:"package_runner"`  // runs the CSS framework CLI
	Generator      string `mapstructure:"generator"`       // initializer passed to "create"
	Template       string `mapstructure:"template"`        // generator template selector
}

// Default returns the stock npm / Vite / React configuration.
func Default() *Config {
	return &Config{
		PackageManager: "npm",
		PackageRunner:  "npx",
		Generator:      "vite@latest",
		Template:       "react",
	}
}

// Load returns the defaults, overridden by the YAML file at path when path is
// non-empty. An explicitly named file that cannot be read is an error.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType(fileType)
	v.SetDefault("package_manager", def.PackageManager)
	v.SetDefault("package_runner", def.PackageRunner)
	v.SetDefault("generator", def.Generator)
	v.SetDefault("template", def.Template)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first empty setting.
func (c *Config) Validate() error {
	fields := []struct{ key, value string }{
		{"package_manager", c.PackageManager},
		{"package_runner", c.PackageRunner},
		{"generator", c.Generator},
		{"template", c.Template},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("config: %s must not be empty", f.key)
		}
	}
	return nil
}
