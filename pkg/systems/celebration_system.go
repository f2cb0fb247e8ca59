package systems

import (
	"log"

	"github.com/decker502/giftcard/internal/particle"
	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
	"github.com/decker502/giftcard/pkg/entities"
)

// CelebrationSystem 一次性的彩纸庆祝
//
// Trigger 之后立即生效，CelebrationDuration 后由调度器自动结束，
// 结束时彩纸发射器及其粒子一并移除。再次 Trigger 不会重新开始。
type CelebrationSystem struct {
	entityManager *ecs.EntityManager
	timers        *TimerSystem
	particles     *ParticleSystem
	effects       *particle.ParticleConfig
	entity        ecs.EntityID

	// OnEnd 庆祝结束时调用
	OnEnd func()
}

// NewCelebrationSystem 创建庆祝系统
// particles 或 effects 为 nil 时只维护状态，不产生彩纸
func NewCelebrationSystem(em *ecs.EntityManager, timers *TimerSystem, particles *ParticleSystem, effects *particle.ParticleConfig) *CelebrationSystem {
	cs := &CelebrationSystem{
		entityManager: em,
		timers:        timers,
		particles:     particles,
		effects:       effects,
	}
	cs.entity = em.CreateEntity()
	ecs.AddComponent(em, cs.entity, &components.CelebrationComponent{
		Duration: config.CelebrationDuration,
	})
	return cs
}

func (cs *CelebrationSystem) component() *components.CelebrationComponent {
	comp, ok := ecs.GetComponent[*components.CelebrationComponent](cs.entityManager, cs.entity)
	if !ok {
		return nil
	}
	return comp
}

// Trigger 开始庆祝，彩纸铺满 width x height 的区域
// 返回是否真的开始了（只有第一次调用会）
func (cs *CelebrationSystem) Trigger(width, height float64) bool {
	comp := cs.component()
	if comp == nil || comp.Triggered {
		return false
	}
	comp.Triggered = true
	comp.Active = true
	comp.Elapsed = 0

	if cs.particles != nil && cs.effects != nil {
		emitter, err := entities.CreateParticleEffect(cs.entityManager, cs.effects, config.ConfettiEmitterName, 0, 0, width, height)
		if err != nil {
			log.Printf("[CelebrationSystem] Failed to create confetti: %v", err)
		} else {
			comp.Emitter = emitter
		}
	}
	cs.timers.Schedule("celebration-end", comp.Duration, cs.end)

	log.Printf("[CelebrationSystem] Celebration started (%.1fs)", comp.Duration)
	return true
}

// end 调度器回调
func (cs *CelebrationSystem) end() {
	comp := cs.component()
	if comp == nil || !comp.Active {
		return
	}
	comp.Active = false
	if cs.particles != nil && comp.Emitter != 0 {
		cs.particles.DestroyEmitter(comp.Emitter)
		comp.Emitter = 0
	}
	log.Println("[CelebrationSystem] Celebration ended")

	if cs.OnEnd != nil {
		cs.OnEnd()
	}
}

// Active 庆祝是否正在进行
func (cs *CelebrationSystem) Active() bool {
	comp := cs.component()
	return comp != nil && comp.Active
}

// Triggered 是否已经触发过
func (cs *CelebrationSystem) Triggered() bool {
	comp := cs.component()
	return comp != nil && comp.Triggered
}

// Elapsed 庆祝开始后的时间
func (cs *CelebrationSystem) Elapsed() float64 {
	if comp := cs.component(); comp != nil {
		return comp.Elapsed
	}
	return 0
}

// Component 返回庆祝组件，供绘制读取
func (cs *CelebrationSystem) Component() *components.CelebrationComponent {
	return cs.component()
}

// Resize 窗口尺寸变化时更新彩纸的发射区域
func (cs *CelebrationSystem) Resize(width, height float64) {
	comp := cs.component()
	if comp == nil || comp.Emitter == 0 || cs.particles == nil {
		return
	}
	cs.particles.SetArea(comp.Emitter, width, height)
}

// Update 推进计时；结束由调度器负责
func (cs *CelebrationSystem) Update(dt float64) {
	if comp := cs.component(); comp != nil && comp.Active {
		comp.Elapsed += dt
	}
}
