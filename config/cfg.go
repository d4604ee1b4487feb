package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	OutputConfig struct {
		Pretty bool   `yaml:"pretty"`
		Indent string `yaml:"indent" validate:"required_if=Pretty true"`
		// Names are checked when listing, unknown ones produce warnings rather
		// than configuration errors.
		Include []string `yaml:"include" validate:"dive,required"`
	}

	FetchConfig struct {
		Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
		UserAgent string        `yaml:"user_agent" validate:"required"`
		AuthToken SecretString  `yaml:"auth_token,omitempty"`
		CacheSize int           `yaml:"cache_size" validate:"gte=0"`
		MaxSize   int64         `yaml:"max_size" validate:"gt=0"`
	}

	SourcesConfig struct {
		Encoding    string      `yaml:"encoding,omitempty"`
		Concurrency int         `yaml:"concurrency" validate:"min=1,max=64"`
		Archive     string      `yaml:"archive" validate:"required"`
		Fetch       FetchConfig `yaml:"fetch"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Output    OutputConfig   `yaml:"output"`
		Sources   SourcesConfig  `yaml:"sources"`
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
// superimposes its values on top of expanded configuration tamplate to provide
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
