package systems

import (
	"testing"

	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
)

// tick 以固定步长推进 n 帧
func tick(n int, update func(dt float64)) {
	for i := 0; i < n; i++ {
		update(config.FixedDeltaTime)
	}
}

func TestTimerSystem_FiresOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	fired := 0
	ts.Schedule("reveal", 0.6, func() { fired++ })

	// 0.6s = 36 帧，第 35 帧时尚未到期
	tick(35, ts.Update)
	if fired != 0 {
		t.Fatalf("fired after 35 ticks, want none")
	}
	tick(1, ts.Update)
	if fired != 1 {
		t.Fatalf("fired = %d after 36 ticks, want 1", fired)
	}

	tick(100, ts.Update)
	if fired != 1 {
		t.Errorf("event fired %d times, want exactly once", fired)
	}
	if ts.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", ts.Pending())
	}
}

func TestTimerSystem_Order(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	var order []string
	ts.Schedule("late", 0.5, func() { order = append(order, "late") })
	ts.Schedule("early", 0.1, func() { order = append(order, "early") })
	ts.Schedule("same-a", 0.3, func() { order = append(order, "same-a") })
	ts.Schedule("same-b", 0.3, func() { order = append(order, "same-b") })

	// 一次推进 1 秒：全部到期，按到期先后执行，相同则按安排顺序
	ts.Update(1.0)

	want := []string{"early", "same-a", "same-b", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestTimerSystem_Cancel(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	fired := false
	id := ts.Schedule("cancelled", 0.2, func() { fired = true })

	if !ts.Cancel(id) {
		t.Fatal("Cancel should report success for a pending event")
	}
	if ts.Cancel(id) {
		t.Error("second Cancel should report false")
	}

	tick(60, ts.Update)
	if fired {
		t.Error("cancelled event must not fire")
	}
}

func TestTimerSystem_CancelAll(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	fired := 0
	for i := 0; i < 3; i++ {
		ts.Schedule("event", 0.1, func() { fired++ })
	}
	if ts.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", ts.Pending())
	}

	ts.CancelAll()
	if ts.Pending() != 0 {
		t.Errorf("Pending = %d after CancelAll, want 0", ts.Pending())
	}

	tick(60, ts.Update)
	if fired != 0 {
		t.Errorf("fired = %d after CancelAll, want 0", fired)
	}
}

// 回调中销毁调度器（页面切换），同一帧的其余事件不再执行
func TestTimerSystem_CancelAllInsideCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	var fired []string
	ts.Schedule("teardown", 0.1, func() {
		fired = append(fired, "teardown")
		ts.CancelAll()
	})
	ts.Schedule("after", 0.1, func() { fired = append(fired, "after") })

	ts.Update(0.2)
	if len(fired) != 1 || fired[0] != "teardown" {
		t.Errorf("fired = %v, want only teardown", fired)
	}
}

// 回调中安排的新事件不会在同一帧执行
func TestTimerSystem_ScheduleInsideCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	chained := false
	ts.Schedule("first", 0, func() {
		ts.Schedule("second", 0, func() { chained = true })
	})

	ts.Update(config.FixedDeltaTime)
	if chained {
		t.Fatal("event scheduled inside a callback fired in the same update")
	}
	ts.Update(config.FixedDeltaTime)
	if !chained {
		t.Error("chained event should fire on the next update")
	}
}
