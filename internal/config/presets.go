package config

import (
	"fmt"
	"sort"
	"strings"
)

// Presets are named starting points for common run shapes. Loading a
// preset fills the whole config; flags still win afterwards.
var Presets = map[string]*Config{
	"bounce": {
		SeedMode: "fixed", LatentMode: "bounce", ImageLimit: -1, ModLimit: 5.0,
		Latent:  LatentConfig{Channels: 4, Height: 64, Width: 64},
		Sampler: SamplerConfig{Backend: "offline", Model: "stable-diffusion", Steps: 20, CFG: 8.0, Name: "euler", Scheduler: "normal", Denoise: 1.0},
	},
	"drift": {
		SeedMode: "increase", LatentMode: "increase", ImageLimit: -1, ModLimit: 0,
		Latent:  LatentConfig{Channels: 4, Height: 64, Width: 64},
		Sampler: SamplerConfig{Backend: "offline", Model: "stable-diffusion", Steps: 20, CFG: 8.0, Name: "euler", Scheduler: "normal", Denoise: 0.6},
	},
	"pulse": {
		SeedMode: "fixed", LatentMode: "flow", ImageLimit: -1, ModLimit: 3.0,
		Latent:  LatentConfig{Channels: 4, Height: 64, Width: 64},
		Sampler: SamplerConfig{Backend: "offline", Model: "stable-diffusion", Steps: 20, CFG: 8.0, Name: "euler", Scheduler: "normal", Denoise: 1.0},
	},
	"noise": {
		SeedMode: "random", LatentMode: "gauss", ImageLimit: -1, ModLimit: 0,
		Latent:  LatentConfig{Channels: 4, Height: 64, Width: 64},
		Sampler: SamplerConfig{Backend: "offline", Model: "stable-diffusion", Steps: 20, CFG: 8.0, Name: "euler", Scheduler: "karras", Denoise: 1.0},
	},
	"still": {
		SeedMode: "fixed", LatentMode: "static", ImageLimit: -1, ModLimit: 0,
		Latent:  LatentConfig{Channels: 4, Height: 64, Width: 64},
		Sampler: SamplerConfig{Backend: "offline", Model: "stable-diffusion", Steps: 20, CFG: 8.0, Name: "euler", Scheduler: "normal", Denoise: 1.0},
	},
}

// GetPreset returns a copy of the named preset so callers can mutate
// the result freely.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown preset %q (available: %s)",
			name, strings.Join(ListPresets(), ", "))
	}
	cp := *p
	cp.Modifiers = append([]float64(nil), p.Modifiers...)
	return &cp, nil
}

// ListPresets returns the preset names sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
