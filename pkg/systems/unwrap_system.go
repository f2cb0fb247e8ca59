package systems

import (
	"log"

	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
)

// UnwrapSystem 拆礼物状态机
//
// 状态：Wrapped(n) n∈[0,4] → Opening → Revealed
//   - Wrapped(n), n<4 时点击进入 Wrapped(n+1)，礼物盒摇晃
//   - Wrapped(4) 时点击进入 Opening：立即开始庆祝，RevealDelay 后进入 Revealed
//   - Opening / Revealed 时点击被忽略
//
// 每次点击都会让当前显示的包装层（序号 4-n）飞出，
// 旋转方向由 n 的奇偶决定：偶数逆时针，奇数顺时针。
type UnwrapSystem struct {
	entityManager *ecs.EntityManager
	timers        *TimerSystem
	entity        ecs.EntityID

	// OnAdvance 每次有效点击后调用，参数为新的进度（1~5）
	OnAdvance func(progress int)
	// OnCelebrate 第五次点击时调用一次
	OnCelebrate func()
	// OnReveal 进入 Revealed 时调用一次
	OnReveal func()
}

// NewUnwrapSystem 创建状态机实体，初始状态 Wrapped(0)
func NewUnwrapSystem(em *ecs.EntityManager, timers *TimerSystem) *UnwrapSystem {
	us := &UnwrapSystem{
		entityManager: em,
		timers:        timers,
	}
	us.entity = em.CreateEntity()
	ecs.AddComponent(em, us.entity, &components.UnwrapComponent{
		State: components.UnwrapWrapped,
	})
	log.Println("[UnwrapSystem] Created, state: wrapped(0)")
	return us
}

// component 返回状态机组件；页面销毁后返回 nil
func (us *UnwrapSystem) component() *components.UnwrapComponent {
	comp, ok := ecs.GetComponent[*components.UnwrapComponent](us.entityManager, us.entity)
	if !ok {
		return nil
	}
	return comp
}

// State 当前状态
func (us *UnwrapSystem) State() components.UnwrapState {
	if comp := us.component(); comp != nil {
		return comp.State
	}
	return components.UnwrapRevealed
}

// Progress 已点击次数 [0, UnwrapSteps]
func (us *UnwrapSystem) Progress() int {
	if comp := us.component(); comp != nil {
		return comp.Progress
	}
	return config.UnwrapSteps
}

// VisibleLayer 当前显示的包装层序号，拆开后返回 -1
func (us *UnwrapSystem) VisibleLayer() int {
	comp := us.component()
	if comp == nil || comp.State != components.UnwrapWrapped {
		return -1
	}
	return config.UnwrapSteps - 1 - comp.Progress
}

// Activate 处理一次点击，返回状态是否发生了变化
func (us *UnwrapSystem) Activate() bool {
	comp := us.component()
	if comp == nil {
		return false
	}
	if comp.State != components.UnwrapWrapped {
		log.Printf("[UnwrapSystem] Activation ignored in state %s", comp.State)
		return false
	}

	n := comp.Progress
	us.spawnLayerExit(config.UnwrapSteps-1-n, exitDirection(n))

	comp.Progress = n + 1
	comp.PromptElapsed = 0

	if us.OnAdvance != nil {
		us.OnAdvance(comp.Progress)
	}

	if comp.Progress < config.UnwrapSteps {
		comp.Shaking = true
		comp.ShakeElapsed = 0
		log.Printf("[UnwrapSystem] State: wrapped(%d) → wrapped(%d)", n, comp.Progress)
		return true
	}

	comp.State = components.UnwrapOpening
	comp.Shaking = false
	comp.OpenedElapsed = 0
	comp.RevealEvent = us.timers.Schedule("reveal", config.RevealDelay, us.reveal)
	log.Printf("[UnwrapSystem] State: wrapped(%d) → opening", n)

	if us.OnCelebrate != nil {
		us.OnCelebrate()
	}
	return true
}

// reveal 延迟事件回调
func (us *UnwrapSystem) reveal() {
	comp := us.component()
	if comp == nil || comp.State != components.UnwrapOpening {
		return
	}
	comp.State = components.UnwrapRevealed
	comp.RevealEvent = 0
	log.Println("[UnwrapSystem] State: opening → revealed")

	if us.OnReveal != nil {
		us.OnReveal()
	}
}

// exitDirection 第 n 次点击前的包装层飞出方向
func exitDirection(n int) float64 {
	if n%2 == 0 {
		return -1
	}
	return 1
}

// spawnLayerExit 为被拆掉的包装层创建飞出动画实体
func (us *UnwrapSystem) spawnLayerExit(layer int, direction float64) {
	id := us.entityManager.CreateEntity()
	ecs.AddComponent(us.entityManager, id, &components.LayerExitComponent{
		LayerIndex: layer,
		Direction:  direction,
		Duration:   config.LayerExitDuration,
	})
}

// Update 推进摇晃、提示文字、飞出的包装层与拆开动画
func (us *UnwrapSystem) Update(dt float64) {
	if comp := us.component(); comp != nil {
		comp.PromptElapsed += dt
		if comp.Shaking {
			comp.ShakeElapsed += dt
			if comp.ShakeElapsed >= config.BoxShakeDuration {
				comp.Shaking = false
				comp.ShakeElapsed = 0
			}
		}
		if comp.State != components.UnwrapWrapped {
			comp.OpenedElapsed += dt
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.LayerExitComponent](us.entityManager) {
		exit, ok := ecs.GetComponent[*components.LayerExitComponent](us.entityManager, id)
		if !ok {
			continue
		}
		exit.Elapsed += dt
		if exit.Elapsed >= exit.Duration {
			ecs.RemoveComponent[*components.LayerExitComponent](us.entityManager, id)
			us.entityManager.DestroyEntity(id)
		}
	}
}

// ExitingLayers 返回正在飞出的包装层，按创建顺序排列
func (us *UnwrapSystem) ExitingLayers() []*components.LayerExitComponent {
	ids := ecs.GetEntitiesWith1[*components.LayerExitComponent](us.entityManager)
	out := make([]*components.LayerExitComponent, 0, len(ids))
	for _, id := range ids {
		if exit, ok := ecs.GetComponent[*components.LayerExitComponent](us.entityManager, id); ok {
			out = append(out, exit)
		}
	}
	return out
}

// Component 返回状态机组件，供渲染读取；页面销毁后返回 nil
func (us *UnwrapSystem) Component() *components.UnwrapComponent {
	return us.component()
}
