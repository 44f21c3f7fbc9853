package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Dedup struct {
		WindowSeconds int `yaml:"window_seconds"`
	} `yaml:"dedup"`
	Ranking struct {
		Limit int `yaml:"limit"`
	} `yaml:"ranking"`
}

// DedupWindow returns the dedup window as a duration.
func (c *Config) DedupWindow() time.Duration {
	return time.Duration(c.Dedup.WindowSeconds) * time.Second
}

// LoadConfig reads path, falling back to defaults when the file is absent.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}
	config.Data.Dir = "./data"
	config.Dedup.WindowSeconds = 30
	config.Ranking.Limit = 10

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, err
	}

	if config.Data.Dir == "" {
		config.Data.Dir = "./data"
	}
	if config.Dedup.WindowSeconds <= 0 {
		config.Dedup.WindowSeconds = 30
	}
	if config.Ranking.Limit <= 0 {
		config.Ranking.Limit = 10
	}

	return config, nil
}
