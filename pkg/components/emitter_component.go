package components

import (
	"image/color"

	"github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/ecs"
)

// EmitterComponent represents a particle emitter that spawns and manages particles.
// Each emitter uses a configuration (loaded from data/particles.yaml) to determine
// how particles are created, their initial properties, and the emitter's lifecycle.
//
// The ParticleSystem processes emitters each frame to spawn new particles and
// manage their lifecycle.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	// Configuration reference
	Config *particle.EmitterConfig

	// Emitter state (发射器状态)
	Active bool    // Whether the emitter is currently spawning particles
	Age    float64 // Time the emitter has been running (seconds)

	// SystemDuration: total duration before emitter stops (seconds, 0 = infinite)
	SystemDuration float64

	// NextSpawnTime: time (in emitter age) when next particle should spawn
	NextSpawnTime float64

	// Particle tracking (粒子追踪)
	ActiveParticles []ecs.EntityID
	TotalLaunched   int

	// Parsed spawn parameters (from Config, parsed at creation time)
	SpawnRate        float64 // Particles spawned per second
	SpawnMaxActive   int     // 0 = unlimited
	SpawnMaxLaunched int     // 0 = unlimited

	// Colors 颜色池（由 Config.Colors 解析）
	Colors []color.RGBA

	// AreaWidth / AreaHeight 发射区域尺寸
	// AreaRelative 的发射器按此比例换算 EmitterBoxX/Y，通常为窗口尺寸
	AreaWidth  float64
	AreaHeight float64

	// AutoDestroy 发射器停止且粒子全部消失后销毁实体
	AutoDestroy bool
}
