package systems

import (
	"log"
	"sort"

	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/ecs"
)

// timeEpsilon 累加 1/60 会产生浮点误差，剩余时间小于此值即视为到期
const timeEpsilon = 1e-9

// TimerSystem 基于 tick 的一次性延迟事件调度器
//
// 每个页面持有一个 TimerSystem，页面销毁时调用 CancelAll，
// 这是取消事件的唯一入口，之后不会再有回调被执行。
type TimerSystem struct {
	entityManager *ecs.EntityManager

	// generation 每次 CancelAll 递增，用于在回调中途检测到销毁
	generation int
}

// NewTimerSystem 创建调度器
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Schedule 安排 delay 秒后执行 fn，返回事件 ID
// delay <= 0 的事件在下一次 Update 时执行
func (ts *TimerSystem) Schedule(name string, delay float64, fn func()) ecs.EntityID {
	id := ts.entityManager.CreateEntity()
	ecs.AddComponent(ts.entityManager, id, &components.ScheduledEventComponent{
		Name:      name,
		Remaining: delay,
		Callback:  fn,
	})
	log.Printf("[TimerSystem] Scheduled %q (id=%d) in %.3fs", name, id, delay)
	return id
}

// Cancel 取消尚未执行的事件，返回是否确实取消了
func (ts *TimerSystem) Cancel(id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.ScheduledEventComponent](ts.entityManager, id) {
		return false
	}
	ecs.RemoveComponent[*components.ScheduledEventComponent](ts.entityManager, id)
	ts.entityManager.DestroyEntity(id)
	return true
}

// CancelAll 取消全部事件（页面销毁时调用）
func (ts *TimerSystem) CancelAll() {
	ts.generation++
	ids := ecs.GetEntitiesWith1[*components.ScheduledEventComponent](ts.entityManager)
	for _, id := range ids {
		ts.Cancel(id)
	}
	if len(ids) > 0 {
		log.Printf("[TimerSystem] Cancelled %d pending events", len(ids))
	}
}

// Pending 返回尚未执行的事件数量
func (ts *TimerSystem) Pending() int {
	return len(ecs.GetEntitiesWith1[*components.ScheduledEventComponent](ts.entityManager))
}

// Update 推进所有事件，执行到期的回调
//
// 同一帧内到期的事件按到期先后（相同则按安排顺序）执行。
// 回调可以安排或取消其他事件；若回调调用了 CancelAll，本帧剩余事件不再执行。
func (ts *TimerSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith1[*components.ScheduledEventComponent](ts.entityManager)

	type dueEvent struct {
		id    ecs.EntityID
		event *components.ScheduledEventComponent
	}
	var due []dueEvent

	for _, id := range ids {
		event, ok := ecs.GetComponent[*components.ScheduledEventComponent](ts.entityManager, id)
		if !ok {
			continue
		}
		event.Remaining -= dt
		if event.Remaining <= timeEpsilon {
			due = append(due, dueEvent{id: id, event: event})
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].event.Remaining < due[j].event.Remaining
	})

	generation := ts.generation
	for _, d := range due {
		if ts.generation != generation {
			return
		}
		// 被前面的回调取消
		if !ts.Cancel(d.id) {
			continue
		}
		log.Printf("[TimerSystem] Firing %q (id=%d)", d.event.Name, d.id)
		if d.event.Callback != nil {
			d.event.Callback()
		}
	}
}
