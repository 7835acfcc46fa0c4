package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/latentwalk/internal/latent"
)

const (
	DefaultSeed       = 0
	DefaultImageLimit = -1
	DefaultModLimit   = 5.0
	DefaultSteps      = 20
	DefaultCFG        = 8.0
	DefaultDenoise    = 1.0
	DefaultChannels   = 4
	DefaultHeight     = 64
	DefaultWidth      = 64
)

type Config struct {
	SeedMode   string  `yaml:"seed_mode"`
	LatentMode string  `yaml:"latent_mode"`
	Seed       uint64  `yaml:"seed"`
	ImageLimit int     `yaml:"image_limit"`
	ModLimit   float64 `yaml:"mod_limit"`

	Latent  LatentConfig  `yaml:"latent"`
	Sampler SamplerConfig `yaml:"sampler"`

	PromptsFile   string    `yaml:"prompts_file,omitempty"`
	ModifiersFile string    `yaml:"modifiers_file,omitempty"`
	Modifiers     []float64 `yaml:"modifiers,omitempty"`
}

// LatentConfig sizes the starting latent when no tensor is supplied.
type LatentConfig struct {
	Channels int `yaml:"channels"`
	Height   int `yaml:"height"`
	Width    int `yaml:"width"`
}

type SamplerConfig struct {
	Backend    string  `yaml:"backend"`
	URL        string  `yaml:"url,omitempty"`
	TimeoutSec int     `yaml:"timeout_sec,omitempty"`
	Model      string  `yaml:"model"`
	Steps      int     `yaml:"steps"`
	CFG        float64 `yaml:"cfg"`
	Name       string  `yaml:"sampler_name"`
	Scheduler  string  `yaml:"scheduler"`
	Denoise    float64 `yaml:"denoise"`
}

func DefaultConfig() *Config {
	return &Config{
		SeedMode:   "fixed",
		LatentMode: "bounce",
		Seed:       DefaultSeed,
		ImageLimit: DefaultImageLimit,
		ModLimit:   DefaultModLimit,
		Latent: LatentConfig{
			Channels: DefaultChannels,
			Height:   DefaultHeight,
			Width:    DefaultWidth,
		},
		Sampler: SamplerConfig{
			Backend:   "offline",
			Model:     "stable-diffusion",
			Steps:     DefaultSteps,
			CFG:       DefaultCFG,
			Name:      "euler",
			Scheduler: "normal",
			Denoise:   DefaultDenoise,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parts of the config the orchestrator cannot see:
// mode names and latent dimensions.
func (c *Config) Validate() error {
	if _, err := latent.ParseMode(c.LatentMode); err != nil {
		return err
	}
	if _, err := latent.ParseSeedMode(c.SeedMode); err != nil {
		return err
	}
	if c.Latent.Channels < 1 || c.Latent.Height < 1 || c.Latent.Width < 1 {
		return fmt.Errorf("config: latent dimensions must be positive, got %dx%dx%d",
			c.Latent.Channels, c.Latent.Height, c.Latent.Width)
	}
	return nil
}

// StartLatent builds the zero starting latent from the configured
// dimensions.
func (c *Config) StartLatent() latent.Tensor {
	return latent.New(1, c.Latent.Channels, c.Latent.Height, c.Latent.Width)
}
