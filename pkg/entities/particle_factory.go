package entities

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
)

// CreateParticleEffect creates a particle emitter entity at the specified position.
// The emitter will spawn particles according to its configuration in data/particles.yaml.
//
// Parameters:
//   - em: EntityManager instance for creating entities
//   - pc: Loaded particle configuration
//   - effectName: Name of the emitter (e.g., "Confetti", "HeroDust")
//   - x, y: Screen coordinates of the emitter origin
//   - areaWidth, areaHeight: Spawn area size for emitters with areaRelative set
//
// Returns:
//   - ecs.EntityID: The ID of the created emitter entity
//   - error: Error if the emitter is not defined
//
// Example:
//
//	emitterID, err := CreateParticleEffect(em, particleConfig, "Confetti", 0, 0, 1024, 768)
//	if err != nil {
//	    log.Printf("Failed to create particle effect: %v", err)
//	}
func CreateParticleEffect(em *ecs.EntityManager, pc *particle.ParticleConfig, effectName string, x, y, areaWidth, areaHeight float64) (ecs.EntityID, error) {
	if pc == nil {
		return 0, fmt.Errorf("particle config not loaded")
	}
	emitterConfig, ok := pc.Find(effectName)
	if !ok {
		return 0, fmt.Errorf("particle effect '%s' not found", effectName)
	}

	emitterID := em.CreateEntity()
	em.AddComponent(emitterID, &components.PositionComponent{X: x, Y: y})

	em.AddComponent(emitterID, &components.EmitterComponent{
		Config:           emitterConfig,
		Active:           true,
		SystemDuration:   particle.SampleOr(emitterConfig.SystemDuration, 0) / 1000.0, // ms to seconds
		NextSpawnTime:    0,                                                           // Spawn immediately
		ActiveParticles:  make([]ecs.EntityID, 0),
		SpawnRate:        particle.SampleOr(emitterConfig.SpawnRate, 0),
		SpawnMaxActive:   int(particle.SampleOr(emitterConfig.SpawnMaxActive, 0)),
		SpawnMaxLaunched: int(particle.SampleOr(emitterConfig.SpawnMaxLaunched, 0)),
		Colors:           parseColors(emitterConfig),
		AreaWidth:        areaWidth,
		AreaHeight:       areaHeight,
	})

	log.Printf("[ParticleFactory] Created %s emitter (id=%d) at (%.0f, %.0f)", effectName, emitterID, x, y)
	return emitterID, nil
}

// parseColors 解析颜色池，至少返回一种颜色
func parseColors(cfg *particle.EmitterConfig) []color.RGBA {
	colors := make([]color.RGBA, 0, len(cfg.Colors))
	for _, hex := range cfg.Colors {
		c, err := config.ParseHexColor(hex)
		if err != nil {
			log.Printf("[ParticleFactory] Emitter %s: invalid color %q: %v", cfg.Name, hex, err)
			continue
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		colors = append(colors, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return colors
}
