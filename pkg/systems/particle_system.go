package systems

import (
	"math"
	"math/rand"

	particlePkg "github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// ParticleSystem manages all particle emitters and individual particles.
// It handles spawning particles from emitters, updating their properties
// each frame (position, rotation, alpha, etc.), and destroying particles
// when their lifetime expires.
//
// The system processes particles in two phases:
//  1. Update all emitters (spawn new particles, check duration limits)
//  2. Update all particles (apply velocity, forces, interpolation)
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	// 绘制缓存（见 particle_render.go）
	shapeImages      map[particlePkg.Shape]*ebiten.Image
	particleVertices []ebiten.Vertex
	particleIndices  []uint16
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{
		EntityManager: em,
	}
}

// StopEmitter 停止发射，已有粒子继续运动直到生命结束，然后销毁发射器
func (ps *ParticleSystem) StopEmitter(id ecs.EntityID) {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		emitter.Active = false
		emitter.AutoDestroy = true
	}
}

// DestroyEmitter 立即移除发射器及其全部粒子
func (ps *ParticleSystem) DestroyEmitter(id ecs.EntityID) {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
	if !ok {
		return
	}
	for _, pid := range emitter.ActiveParticles {
		ps.destroyParticle(pid)
	}
	emitter.ActiveParticles = nil
	ecs.RemoveComponent[*components.EmitterComponent](ps.EntityManager, id)
	ps.EntityManager.DestroyEntity(id)
}

// SetArea 更新发射区域尺寸
func (ps *ParticleSystem) SetArea(id ecs.EntityID, width, height float64) {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		emitter.AreaWidth = width
		emitter.AreaHeight = height
	}
}

// SetPosition 移动发射器
func (ps *ParticleSystem) SetPosition(id ecs.EntityID, x, y float64) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id); ok {
		pos.X = x
		pos.Y = y
	}
}

// ParticleCount 返回发射器当前存活的粒子数
func (ps *ParticleSystem) ParticleCount(id ecs.EntityID) int {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		return len(emitter.ActiveParticles)
	}
	return 0
}

// TotalLaunched 返回发射器累计发射的粒子数
func (ps *ParticleSystem) TotalLaunched(id ecs.EntityID) int {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		return emitter.TotalLaunched
	}
	return 0
}

// Update processes all emitters and particles for the current frame.
// dt is the delta time in seconds since the last frame.
func (ps *ParticleSystem) Update(dt float64) {
	ps.updateEmitters(dt)
	ps.updateParticles(dt)
}

// updateEmitters processes all emitter entities, spawning new particles
// and managing emitter lifecycle.
func (ps *ParticleSystem) updateEmitters(dt float64) {
	emitterEntities := ecs.GetEntitiesWith2[
		*components.EmitterComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, emitterID := range emitterEntities {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}

		emitter.Age += dt

		// Check system duration (0 = infinite)
		if emitter.SystemDuration > 0 && emitter.Age >= emitter.SystemDuration {
			emitter.Active = false
			emitter.AutoDestroy = true
		}

		if emitter.Active && emitter.Config != nil && emitter.SpawnRate > 0 {
			// Continuous spawn mode: spawn particles at regular intervals
			for emitter.Age >= emitter.NextSpawnTime {
				if emitter.SpawnMaxActive > 0 && len(emitter.ActiveParticles) >= emitter.SpawnMaxActive {
					break
				}
				if emitter.SpawnMaxLaunched > 0 && emitter.TotalLaunched >= emitter.SpawnMaxLaunched {
					break
				}
				ps.spawnParticle(emitterID, emitter, position)
				emitter.TotalLaunched++
				emitter.NextSpawnTime += 1.0 / emitter.SpawnRate
			}
		}

		// 发射结束且粒子全部消失后销毁发射器
		if !emitter.Active && emitter.AutoDestroy && len(emitter.ActiveParticles) == 0 {
			ecs.RemoveComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
			ps.EntityManager.DestroyEntity(emitterID)
		}
	}
}

// spawnParticle creates a new particle entity based on the emitter's configuration.
func (ps *ParticleSystem) spawnParticle(emitterID ecs.EntityID, emitter *components.EmitterComponent, position *components.PositionComponent) {
	cfg := emitter.Config

	// 发射位置：发射器位置 + 发射区域内随机点 + 偏移
	x := position.X + sampleBox(cfg.EmitterBoxX, cfg.AreaRelative, emitter.AreaWidth) + particlePkg.Sample(cfg.EmitterOffsetX)
	y := position.Y + sampleBox(cfg.EmitterBoxY, cfg.AreaRelative, emitter.AreaHeight) + particlePkg.Sample(cfg.EmitterOffsetY)

	speed := particlePkg.Sample(cfg.LaunchSpeed)
	angle := particlePkg.Sample(cfg.LaunchAngle) * math.Pi / 180.0

	width := particlePkg.SampleOr(cfg.ParticleWidth, 8)
	height := particlePkg.SampleOr(cfg.ParticleHeight, width)

	p := &components.ParticleComponent{
		Emitter:       emitterID,
		VelocityX:     speed * math.Cos(angle),
		VelocityY:     speed * math.Sin(angle),
		Rotation:      particlePkg.Sample(cfg.ParticleSpinAngle),
		RotationSpeed: particlePkg.Sample(cfg.ParticleSpinSpeed),
		Shape:         cfg.Shape,
		Color:         emitter.Colors[rand.Intn(len(emitter.Colors))],
		Width:         width,
		Height:        height,
		Lifetime:      particlePkg.SampleOr(cfg.ParticleDuration, 1000) / 1000.0,
		ParticleLoops: cfg.ParticleLoops,
		InitialX:      x,
		InitialY:      y,
	}

	if cfg.Shape == particlePkg.ShapeConfetti {
		p.Flip = rand.Float64() * 2 * math.Pi
		p.FlipSpeed = particlePkg.RandomInRange(3, 9)
	}

	// Alpha / Scale：关键帧或固定值
	minA, maxA, alphaKF, alphaInterp := particlePkg.ParseValue(cfg.ParticleAlpha)
	if alphaKF != nil {
		p.AlphaKeyframes = alphaKF
		p.AlphaInterpolation = alphaInterp
	} else if cfg.ParticleAlpha == "" {
		p.BaseAlpha = 1
	} else {
		p.BaseAlpha = particlePkg.RandomInRange(minA, maxA)
	}

	minS, maxS, scaleKF, scaleInterp := particlePkg.ParseValue(cfg.ParticleScale)
	if scaleKF != nil {
		p.ScaleKeyframes = scaleKF
		p.ScaleInterpolation = scaleInterp
	} else if cfg.ParticleScale == "" {
		p.BaseScale = 1
	} else {
		p.BaseScale = particlePkg.RandomInRange(minS, maxS)
	}

	// Force fields (在生成时采样一次)
	for _, field := range cfg.Fields {
		switch field.Type {
		case particlePkg.FieldAcceleration:
			p.AccelerationX = particlePkg.Sample(field.X)
			p.AccelerationY = particlePkg.Sample(field.Y)
		case particlePkg.FieldFriction:
			p.Friction = particlePkg.Sample(field.X)
		case particlePkg.FieldWobble:
			p.WobbleAmp = particlePkg.Sample(field.X)
			p.WobbleFreq = particlePkg.Sample(field.Y)
			p.WobblePhase = rand.Float64() * 2 * math.Pi
		}
	}

	ps.applyCurves(p)

	id := ps.EntityManager.CreateEntity()
	ecs.AddComponent(ps.EntityManager, id, p)
	ecs.AddComponent(ps.EntityManager, id, &components.PositionComponent{X: x, Y: y})
	emitter.ActiveParticles = append(emitter.ActiveParticles, id)
}

// sampleBox 在发射区域内随机取一个偏移
// areaRelative 时配置值是区域尺寸的比例
func sampleBox(value string, areaRelative bool, areaSize float64) float64 {
	v := particlePkg.Sample(value)
	if areaRelative {
		return v * areaSize
	}
	return v
}

// applyCurves 根据粒子年龄计算当前 Alpha 与 Scale
func (ps *ParticleSystem) applyCurves(p *components.ParticleComponent) {
	t := 0.0
	if p.Lifetime > 0 {
		t = p.Age / p.Lifetime
	}
	if p.AlphaKeyframes != nil {
		p.Alpha = particlePkg.EvaluateKeyframes(p.AlphaKeyframes, t, p.AlphaInterpolation)
	} else {
		p.Alpha = p.BaseAlpha
	}
	if p.ScaleKeyframes != nil {
		p.Scale = particlePkg.EvaluateKeyframes(p.ScaleKeyframes, t, p.ScaleInterpolation)
	} else {
		p.Scale = p.BaseScale
	}
}

// updateParticles applies velocity, force fields and keyframe curves to every
// particle, and destroys particles whose lifetime has expired.
func (ps *ParticleSystem) updateParticles(dt float64) {
	particleEntities := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, id := range particleEntities {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)

		p.Age += dt
		if p.Age >= p.Lifetime {
			if !p.ParticleLoops {
				ps.removeFromEmitter(p.Emitter, id)
				ps.destroyParticle(id)
				continue
			}
			p.Age -= p.Lifetime
			pos.X, pos.Y = p.InitialX, p.InitialY
		}

		// Acceleration
		p.VelocityX += p.AccelerationX * dt
		p.VelocityY += p.AccelerationY * dt

		// Friction：系数按 60 TPS 定义
		if p.Friction > 0 {
			damping := math.Pow(1-p.Friction, dt*60)
			p.VelocityX *= damping
			p.VelocityY *= damping
		}

		pos.X += p.VelocityX * dt
		pos.Y += p.VelocityY * dt

		// Wobble：叠加水平摆动
		if p.WobbleAmp != 0 {
			pos.X += p.WobbleAmp * math.Sin(p.WobbleFreq*p.Age+p.WobblePhase) * dt
		}

		p.Rotation += p.RotationSpeed * dt
		p.Flip += p.FlipSpeed * dt

		ps.applyCurves(p)
	}
}

// removeFromEmitter 从发射器的粒子列表中移除
func (ps *ParticleSystem) removeFromEmitter(emitterID, particleID ecs.EntityID) {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
	if !ok {
		return
	}
	for i, id := range emitter.ActiveParticles {
		if id == particleID {
			emitter.ActiveParticles = append(emitter.ActiveParticles[:i], emitter.ActiveParticles[i+1:]...)
			return
		}
	}
}

// destroyParticle 立即移除粒子组件（保证本帧不再绘制），实体延迟删除
func (ps *ParticleSystem) destroyParticle(id ecs.EntityID) {
	ecs.RemoveComponent[*components.ParticleComponent](ps.EntityManager, id)
	ps.EntityManager.DestroyEntity(id)
}
