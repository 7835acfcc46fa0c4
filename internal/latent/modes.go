package latent

import "fmt"

// Mode selects how the latent evolves from one frame to the next.
type Mode int

const (
	// Static leaves the latent untouched every frame.
	Static Mode = iota
	// Increase adds the frame modifier, subject to the mod limit.
	Increase
	// Decrease subtracts the frame modifier, subject to the mod limit.
	Decrease
	// Flow flips a fair coin each frame between Increase and Decrease.
	Flow
	// Gauss replaces the latent with fresh N(3.0, 2.5) noise each frame.
	Gauss
	// Bounce walks upward until the mod limit would be crossed, then
	// reverses, holding direction between frames.
	Bounce
)

var modeNames = map[Mode]string{
	Static:   "static",
	Increase: "increase",
	Decrease: "decrease",
	Flow:     "flow",
	Gauss:    "gauss",
	Bounce:   "bounce",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to its Mode value.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return Static, fmt.Errorf("latent: unknown latent mode %q", s)
}

// Modes lists every latent mode name in declaration order.
func Modes() []string {
	return []string{"static", "increase", "decrease", "flow", "gauss", "bounce"}
}

// SeedMode selects how the sampler seed advances between frames.
type SeedMode int

const (
	// SeedFixed reuses the initial seed for every frame.
	SeedFixed SeedMode = iota
	// SeedRandom draws a fresh uniform seed each frame.
	SeedRandom
	// SeedIncrease increments the seed each frame.
	SeedIncrease
	// SeedDecrease decrements the seed each frame.
	SeedDecrease
)

var seedModeNames = map[SeedMode]string{
	SeedFixed:    "fixed",
	SeedRandom:   "random",
	SeedIncrease: "increase",
	SeedDecrease: "decrease",
}

func (m SeedMode) String() string {
	if name, ok := seedModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SeedMode(%d)", int(m))
}

// ParseSeedMode maps a seed mode name to its SeedMode value.
func ParseSeedMode(s string) (SeedMode, error) {
	for m, name := range seedModeNames {
		if name == s {
			return m, nil
		}
	}
	return SeedFixed, fmt.Errorf("latent: unknown seed mode %q", s)
}

// SeedModes lists every seed mode name in declaration order.
func SeedModes() []string {
	return []string{"fixed", "random", "increase", "decrease"}
}
