package particle

import (
	"fmt"

	"github.com/decker502/giftcard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// LoadParticleConfig reads and parses an embedded particle configuration file.
//
// Example usage:
//
//	config, err := LoadParticleConfig("data/particles.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	confetti, _ := config.Find("Confetti")
func LoadParticleConfig(path string) (*ParticleConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read particle config %s: %w", path, err)
	}

	config, err := ParseParticleConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse particle config %s: %w", path, err)
	}
	return config, nil
}

// ParseParticleConfig parses particle configuration YAML.
func ParseParticleConfig(data []byte) (*ParticleConfig, error) {
	var config ParticleConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate that we parsed at least one emitter
	if len(config.Emitters) == 0 {
		return nil, fmt.Errorf("particle config contains no emitters")
	}

	seen := make(map[string]bool, len(config.Emitters))
	for i := range config.Emitters {
		e := &config.Emitters[i]
		if e.Name == "" {
			return nil, fmt.Errorf("emitter #%d has no name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("duplicate emitter name %q", e.Name)
		}
		seen[e.Name] = true

		if e.Shape == "" {
			e.Shape = ShapeRect
		}
		switch e.Shape {
		case ShapeRect, ShapeCircle, ShapeConfetti, ShapeStar:
		default:
			return nil, fmt.Errorf("emitter %s: unknown shape %q", e.Name, e.Shape)
		}
		if len(e.Colors) == 0 {
			e.Colors = []string{"#ffffff"}
		}
		for _, f := range e.Fields {
			switch f.Type {
			case FieldAcceleration, FieldFriction, FieldWobble:
			default:
				return nil, fmt.Errorf("emitter %s: unknown field type %q", e.Name, f.Type)
			}
		}
	}

	return &config, nil
}
