package systems

import (
	"github.com/charmbracelet/harmonica"
	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
)

// SpringSystem 推进所有 SpringComponent
//
// harmonica 的弹簧在创建时就固定了时间步长，因此 Update 不接收 dt，
// 每个 tick 调用一次。
type SpringSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpringSystem 创建弹簧系统
func NewSpringSystem(em *ecs.EntityManager) *SpringSystem {
	return &SpringSystem{entityManager: em}
}

// Attach 为实体添加弹簧，初始值与目标值都为 value
// frequency 为角频率，damping 为阻尼比（<1 会回弹）
func (s *SpringSystem) Attach(id ecs.EntityID, value, frequency, damping float64) *components.SpringComponent {
	spring := &components.SpringComponent{
		Value:  value,
		Target: value,
		Spring: harmonica.NewSpring(harmonica.FPS(int(1/config.FixedDeltaTime+0.5)), frequency, damping),
	}
	ecs.AddComponent(s.entityManager, id, spring)
	return spring
}

// SetTarget 设置弹簧目标值
func (s *SpringSystem) SetTarget(id ecs.EntityID, target float64) {
	if spring, ok := ecs.GetComponent[*components.SpringComponent](s.entityManager, id); ok {
		spring.Target = target
	}
}

// Snap 直接跳到指定值并停止运动
func (s *SpringSystem) Snap(id ecs.EntityID, value float64) {
	if spring, ok := ecs.GetComponent[*components.SpringComponent](s.entityManager, id); ok {
		spring.Value = value
		spring.Target = value
		spring.Velocity = 0
	}
}

// Value 返回弹簧当前值，实体没有弹簧时返回 fallback
func (s *SpringSystem) Value(id ecs.EntityID, fallback float64) float64 {
	if spring, ok := ecs.GetComponent[*components.SpringComponent](s.entityManager, id); ok {
		return spring.Value
	}
	return fallback
}

// Update 推进一个 tick
func (s *SpringSystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.SpringComponent](s.entityManager) {
		spring, _ := ecs.GetComponent[*components.SpringComponent](s.entityManager, id)
		spring.Value, spring.Velocity = spring.Spring.Update(spring.Value, spring.Velocity, spring.Target)
	}
}
