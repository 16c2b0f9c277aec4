package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"bbld/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ThemeConfig struct {
		Primary   string `yaml:"primary" validate:"required,hexcolor"`
		OnPrimary string `yaml:"on_primary" validate:"required,hexcolor"`
	}

	PostprocessConfig struct {
		Profile     common.Profile `yaml:"profile"`
		SidePadding int            `yaml:"side_padding" validate:"min=0,max=64"`
		ConvertAVIF bool           `yaml:"convert_avif"`
		Minify      bool           `yaml:"minify"`
	}

	ImagesConfig struct {
		Optimize    bool                   `yaml:"optimize"`
		MaxWidth    int                    `yaml:"max_width" validate:"min=100"`
		JPEGQuality int                    `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		Resize      common.ImageResizeMode `yaml:"resize"`
	}

	BulletinConfig struct {
		Title       string            `yaml:"title"`
		Theme       ThemeConfig       `yaml:"theme"`
		Postprocess PostprocessConfig `yaml:"postprocess"`
		Images      ImagesConfig      `yaml:"images"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Bulletin  BulletinConfig `yaml:"bulletin"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
