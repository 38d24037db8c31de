package projectconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const DefaultPath = ".packforge/config.yaml"

type Config struct {
	Catalog CatalogDefaults `yaml:"catalog"`
	Build   BuildDefaults   `yaml:"build"`
	Readme  ReadmeDefaults  `yaml:"readme"`
}

type CatalogDefaults struct {
	Path string `yaml:"path"`
}

type BuildDefaults struct {
	CacheDir             string `yaml:"cache_dir"`
	OutputDir            string `yaml:"output_dir"`
	PackName             string `yaml:"pack_name"`
	GameVersion          string `yaml:"game_version"`
	SigningPrivateKey    string `yaml:"signing_private_key"`
	SigningPrivateKeyEnv string `yaml:"signing_private_key_env"`
	VerifyPublicKey      string `yaml:"verify_public_key"`
}

type ReadmeDefaults struct {
	OutputPath string `yaml:"output_path"`
}

// Load reads the project config. A missing file is fine when allowMissing
// is set; flags still override anything configured here.
func Load(path string, allowMissing bool) (Config, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return Config{}, fmt.Errorf("project config path is required")
	}

	// #nosec G304 -- project config path is explicit local user input.
	content, err := os.ReadFile(trimmedPath)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read project config: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return Config{}, nil
	}

	var configuration Config
	if err := yaml.Unmarshal(content, &configuration); err != nil {
		return Config{}, fmt.Errorf("parse project config: %w", err)
	}
	configuration.normalize()
	return configuration, nil
}

func (configuration *Config) normalize() {
	configuration.Catalog.Path = strings.TrimSpace(configuration.Catalog.Path)
	configuration.Build.CacheDir = strings.TrimSpace(configuration.Build.CacheDir)
	configuration.Build.OutputDir = strings.TrimSpace(configuration.Build.OutputDir)
	configuration.Build.PackName = strings.TrimSpace(configuration.Build.PackName)
	configuration.Build.GameVersion = strings.TrimSpace(configuration.Build.GameVersion)
	configuration.Build.SigningPrivateKey = strings.TrimSpace(configuration.Build.SigningPrivateKey)
	configuration.Build.SigningPrivateKeyEnv = strings.TrimSpace(configuration.Build.SigningPrivateKeyEnv)
	configuration.Build.VerifyPublicKey = strings.TrimSpace(configuration.Build.VerifyPublicKey)
	configuration.Readme.OutputPath = strings.TrimSpace(configuration.Readme.OutputPath)
}
